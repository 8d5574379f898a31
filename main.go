package main

import "github.com/llehouerou/tilawa/cmd"

func main() {
	cmd.Execute()
}
