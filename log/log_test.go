package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/v0d1ch/aiken/errors"
)

func setTestLogWriter(w io.Writer) func() {
	logWriterMu.Lock()
	old := logWriter
	logWriter = w
	logWriterMu.Unlock()

	return func() {
		logWriterMu.Lock()
		logWriter = old
		logWriterMu.Unlock()
	}
}

func TestWrite(t *testing.T) {
	examples := []struct {
		keyvals []interface{}
		want    []string
	}{
		// Basic example
		{
			keyvals: []interface{}{"msg", "hello world"},
			want: []string{
				"at=log_test.go:",
				"t=",
				`msg="hello world"`,
			},
		},

		// Duplicate keys
		{
			keyvals: []interface{}{"msg", "hello", "msg", "goodbye"},
			want: []string{
				"at=log_test.go:",
				"t=",
				`msg=hello`,
				`msg=goodbye`,
			},
		},

		// Zero log params
		{
			keyvals: nil,
			want: []string{
				"at=log_test.go:",
				"t=",
			},
		},

		// Odd number of log params
		{
			keyvals: []interface{}{"k1"},
			want: []string{
				"at=log_test.go:",
				"t=",
				"k1=",
				`log-error="odd number of log params"`,
			},
		},
	}

	for i, ex := range examples {
		t.Logf("Example %d", i)

		buf := new(bytes.Buffer)
		reset := setTestLogWriter(buf)

		Write(context.Background(), ex.keyvals...)

		read, err := io.ReadAll(buf)
		if err != nil {
			reset()
			t.Fatal("read buffer error:", err)
		}

		got := string(read)

		for _, w := range ex.want {
			if !strings.Contains(got, w) {
				t.Errorf("Result did not contain string:\ngot:  %s\nwant: %s", got, w)
			}
		}

		reset()
	}
}

func TestWriteStack(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	err := errors.Wrap(errors.New("broken"), "original error")
	Error(context.Background(), err, "failed")

	got := buf.String()
	if !strings.Contains(got, `error="failed: original error: broken"`) {
		t.Errorf("log output missing error message:\n%s", got)
	}
	if !strings.Contains(got, "log.TestWriteStack") {
		t.Errorf("log output missing stack trace:\n%s", got)
	}
}

func TestMessagef(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()

	Messagef(context.Background(), "applied %d params", 2)

	got := buf.String()
	if !strings.Contains(got, `message="applied 2 params"`) {
		t.Errorf("log output missing message:\n%s", got)
	}
	if !strings.Contains(got, "at=log_test.go:") {
		t.Errorf("log output missing caller:\n%s", got)
	}
}

func TestPrefix(t *testing.T) {
	buf := new(bytes.Buffer)
	reset := setTestLogWriter(buf)
	defer reset()
	defer SetPrefix()

	SetPrefix("app", "aiken")
	Write(context.Background(), "k", "v")

	if got := buf.String(); !strings.HasPrefix(got, "app=aiken ") {
		t.Errorf("log output missing prefix:\n%s", got)
	}
}
