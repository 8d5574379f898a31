package errmsg

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Kind classifies failures for the Arabic status line.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindServer
	KindAPI
	KindNotFound
	KindAudio
	KindVerseText
	KindTafsir
	KindLiveExhausted
)

var arabicMessages = map[Kind]string{
	KindUnknown:       "حدث خطأ غير متوقع. يرجى المحاولة مرة أخرى.",
	KindNetwork:       "خطأ في الاتصال بالإنترنت. يرجى التحقق من اتصالك والمحاولة مرة أخرى.",
	KindServer:        "خطأ في الخادم. يرجى المحاولة مرة أخرى لاحقاً.",
	KindAPI:           "خطأ في الاتصال بالخدمة. يرجى المحاولة مرة أخرى.",
	KindNotFound:      "المحتوى المطلوب غير موجود.",
	KindAudio:         "خطأ في تشغيل الملف الصوتي. يرجى المحاولة مرة أخرى.",
	KindVerseText:     "فشل في تحميل النص القرآني",
	KindTafsir:        "التفسير غير متوفر حالياً لهذه الآية",
	KindLiveExhausted: "تعذر تشغيل البث المباشر. جميع المصادر غير متاحة حالياً.",
}

// ArabicMessage returns the user-facing Arabic message for kind.
func ArabicMessage(kind Kind) string {
	if msg, ok := arabicMessages[kind]; ok {
		return msg
	}
	return arabicMessages[KindUnknown]
}

var statusMessages = map[int]string{
	400: "طلب غير صحيح. يرجى التحقق من البيانات المدخلة.",
	403: "ليس لديك صلاحية للوصول إلى هذا المحتوى.",
	404: "المحتوى المطلوب غير موجود.",
	429: "تم تجاوز الحد المسموح من الطلبات. يرجى المحاولة لاحقاً.",
	500: "خطأ في الخادم. يرجى المحاولة مرة أخرى لاحقاً.",
	502: "الخدمة غير متاحة مؤقتاً. يرجى المحاولة لاحقاً.",
	503: "الخدمة غير متاحة حالياً. يرجى المحاولة لاحقاً.",
}

// StatusError is returned by the HTTP clients for non-2xx responses.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
}

// Arabic maps err to an Arabic message, falling back to fallback's
// message when the error carries no better classification.
func Arabic(err error, fallback Kind) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) {
		if msg, ok := statusMessages[se.Code]; ok {
			return msg
		}
		if se.Code >= 500 {
			return ArabicMessage(KindServer)
		}
		return ArabicMessage(fallback)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ArabicMessage(KindNetwork)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ArabicMessage(KindNetwork)
	}
	return ArabicMessage(fallback)
}

// AsStatus unwraps a *StatusError from err.
func AsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
