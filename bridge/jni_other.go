//go:build !android

package bridge

// JNICaller is unavailable off Android; every call fails with
// ErrUnsupported.
type JNICaller struct{}

// NewJNICaller returns a Caller that always fails.
func NewJNICaller() *JNICaller { return &JNICaller{} }

func (*JNICaller) CallVoid(Context, string) error { return ErrUnsupported }

func (*JNICaller) CallString(Context, string) (string, error) { return "", ErrUnsupported }

func (*JNICaller) CallVoidString(Context, string, string) error { return ErrUnsupported }
