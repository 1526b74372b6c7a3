package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 10, "")
	var got []string
	r.Register("search", "search projects", fs, func(args []string) error {
		got = args
		return nil
	})
	if err := r.Execute([]string{"search", "-limit", "3", "webgl", "demo"}); err != nil {
		t.Fatal(err)
	}
	if *limit != 3 || !reflect.DeepEqual(got, []string{"webgl", "demo"}) {
		t.Fatalf("limit = %d, args = %v", *limit, got)
	}
	if err := r.Execute([]string{"search", "-bogus"}); err == nil {
		t.Fatal("expected flag error")
	}
}

func TestExecuteUsageErrors(t *testing.T) {
	r := NewRegistry()
	r.Register("view", "open the viewer", nil, func([]string) error { return nil })
	for _, args := range [][]string{nil, {"nope"}} {
		if err := r.Execute(args); !errors.Is(err, ErrUsage) {
			t.Errorf("Execute(%v) = %v, want ErrUsage", args, err)
		}
	}
}

func TestRunErrorPropagates(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("serve", "", nil, func([]string) error { return boom })
	if err := r.Execute([]string{"serve"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestUsage(t *testing.T) {
	r := NewRegistry()
	r.Register("view", "open the viewer", nil, nil)
	r.Register("import", "import a content pack", nil, nil)
	var buf bytes.Buffer
	r.Usage(&buf, "gallery")
	out := buf.String()
	if strings.Index(out, "import") > strings.Index(out, "view") {
		t.Fatalf("commands not sorted:\n%s", out)
	}
	if !strings.Contains(out, "open the viewer") {
		t.Fatalf("missing summary:\n%s", out)
	}
}
