package tafsirview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/llehouerou/tilawa/internal/errmsg"
	"github.com/llehouerou/tilawa/internal/quran"
	"github.com/llehouerou/tilawa/internal/tafsir"
	"github.com/llehouerou/tilawa/internal/ui/action"
	"github.com/llehouerou/tilawa/internal/ui/testutil"
)

type fakeSource struct {
	err error
}

func (f *fakeSource) Range(_ context.Context, r quran.Range) ([]tafsir.Entry, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []tafsir.Entry
	for v := r.From; v <= r.To; v++ {
		e := tafsir.Entry{Verse: v, Text: strings.Repeat("تفسير ", 3), Available: true}
		if v == r.To {
			e = tafsir.Entry{Verse: v, Text: tafsir.UnavailableText}
		}
		out = append(out, e)
	}
	return out, nil
}

var yaseen = quran.Range{Surah: 36, From: 1, To: 12}

func newLoaded(t *testing.T) (*Model, *testutil.PopupHarness) {
	t.Helper()
	m := New(&fakeSource{})
	m.SetSize(60, 12)
	h := testutil.NewPopupHarness(m)
	h.ExecuteAndSend(m.SetRange("يس", yaseen))
	if m.State() != StateLoaded {
		t.Fatalf("state = %v, want loaded", m.State())
	}
	return m, h
}

func getAction(t *testing.T, h *testutil.PopupHarness) action.Action {
	t.Helper()
	act, ok := h.LastAction()
	if !ok {
		t.Fatal("expected an action")
	}
	return act
}

func TestTafsir_CloseWithQ(t *testing.T) {
	_, h := newLoaded(t)
	h.SendKey("q")
	if _, ok := getAction(t, h).(Close); !ok {
		t.Error("q should close")
	}
}

func TestTafsir_CloseWithEscape(t *testing.T) {
	_, h := newLoaded(t)
	h.SendEscape()
	if _, ok := getAction(t, h).(Close); !ok {
		t.Error("esc should close")
	}
}

func TestTafsir_Passthrough(t *testing.T) {
	_, h := newLoaded(t)
	h.SendKey(" ")
	act, ok := getAction(t, h).(Passthrough)
	if !ok || act.Key.String() != " " {
		t.Errorf("expected passthrough of space, got %+v", act)
	}
}

func TestTafsir_LoadedView(t *testing.T) {
	m, h := newLoaded(t)

	if got := len(m.Entries()); got != 12 {
		t.Fatalf("entries = %d, want 12", got)
	}
	if !h.ViewContains("الآية 1") {
		t.Error("first verse header missing")
	}
	if !h.ViewContains(TitleText + " - يس") {
		t.Error("title missing")
	}
}

func TestTafsir_Scroll(t *testing.T) {
	m, h := newLoaded(t)

	h.SendKey("G")
	bottom := m.scrollOffset
	if bottom == 0 {
		t.Fatal("content should be taller than the popup")
	}
	if !h.ViewContains(tafsir.UnavailableText) {
		t.Error("last verse placeholder should be visible at the bottom")
	}

	h.SendDown()
	if m.scrollOffset != bottom {
		t.Errorf("scrolled past the end: %d > %d", m.scrollOffset, bottom)
	}

	h.SendKey("k")
	if m.scrollOffset != bottom-1 {
		t.Errorf("k should scroll up, offset = %d", m.scrollOffset)
	}
	h.SendKey("g")
	if m.scrollOffset != 0 {
		t.Errorf("g should go to top, offset = %d", m.scrollOffset)
	}
}

func TestTafsir_StaleResultDropped(t *testing.T) {
	m := New(&fakeSource{})
	m.SetSize(60, 12)
	first := m.SetRange("الكهف", quran.Range{Surah: 18, From: 1, To: 3})
	_ = m.SetRange("يس", yaseen)

	m.Update(testutil.ExecuteCmd(first))
	if m.State() != StateLoading {
		t.Errorf("state = %v, stale result should be ignored", m.State())
	}
}

func TestTafsir_Error(t *testing.T) {
	m := New(&fakeSource{err: &errmsg.StatusError{URL: "x", Code: 503}})
	m.SetSize(60, 12)
	h := testutil.NewPopupHarness(m)
	h.ExecuteAndSend(m.SetRange("يس", yaseen))

	if m.State() != StateError {
		t.Fatalf("state = %v, want error", m.State())
	}
	if !h.ViewContains("الخدمة غير متاحة حالياً") {
		t.Errorf("view should show the arabic status message:\n%s", h.View())
	}
}

func TestTafsir_GenericErrorFallsBackToTafsirMessage(t *testing.T) {
	m := New(&fakeSource{err: errors.New("boom")})
	m.SetSize(60, 12)
	m.Update(testutil.ExecuteCmd(m.SetRange("يس", yaseen)))
	if m.errText != errmsg.ArabicMessage(errmsg.KindTafsir) {
		t.Errorf("errText = %q", m.errText)
	}
}
