package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/joiningdata/tabio/table"
)

type stubReader struct {
	payload string
}

func (r stubReader) Read(source string, _ Options) (*table.Table, error) {
	tab := table.New([]string{"payload", "source"})
	if err := tab.AppendRow([]string{r.payload, source}); err != nil {
		return nil, err
	}
	return tab, nil
}

type stubWriter struct {
	targets *[]string
}

func (w stubWriter) Write(_ *table.Table, target string, _ Options) error {
	*w.targets = append(*w.targets, target)
	return nil
}

func TestGetReaderUnknownFormat(t *testing.T) {
	_, err := GetReader("parquet")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("GetReader(parquet) error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), `"parquet"`) {
		t.Errorf("error does not name the unresolved tag: %v", err)
	}
}

func TestGetWriterUnknownFormat(t *testing.T) {
	_, err := GetWriter("parquet")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("GetWriter(parquet) error = %v, want ErrUnknownFormat", err)
	}
	if !strings.Contains(err.Error(), `"parquet"`) {
		t.Errorf("error does not name the unresolved tag: %v", err)
	}
}

func TestRegistrySidesAreIndependent(t *testing.T) {
	RegisterReader("readonly", func() Reader { return stubReader{} })

	if _, err := GetReader("readonly"); err != nil {
		t.Fatalf("GetReader(readonly) error = %v", err)
	}
	if _, err := GetWriter("readonly"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("GetWriter(readonly) error = %v, want ErrUnknownFormat", err)
	}
}

func TestDynamicRegistration(t *testing.T) {
	var targets []string
	RegisterReader("jsonstub", func() Reader { return stubReader{payload: "ok"} })
	RegisterWriter("jsonstub", func() Writer { return stubWriter{targets: &targets} })

	r, err := GetReader("jsonstub")
	if err != nil {
		t.Fatalf("GetReader(jsonstub) error = %v", err)
	}
	tab, err := r.Read("fake.json", Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tab.Row(0)[1]; got != "fake.json" {
		t.Errorf("source passed through = %q, want %q", got, "fake.json")
	}

	w, err := GetWriter("jsonstub")
	if err != nil {
		t.Fatalf("GetWriter(jsonstub) error = %v", err)
	}
	if err := w.Write(tab, "out.json", Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(targets) != 1 || targets[0] != "out.json" {
		t.Errorf("writer saw targets %v, want [out.json]", targets)
	}
}

func TestRegisterReaderLastWins(t *testing.T) {
	RegisterReader("dup", func() Reader { return stubReader{payload: "old"} })
	RegisterReader("dup", func() Reader { return stubReader{payload: "new"} })

	r, err := GetReader("dup")
	if err != nil {
		t.Fatalf("GetReader(dup) error = %v", err)
	}
	tab, err := r.Read("x", Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := tab.Row(0)[0]; got != "new" {
		t.Errorf("re-registered reader returned %q, want the replacement", got)
	}
}

func TestGetReaderConstructsFreshInstances(t *testing.T) {
	calls := 0
	RegisterReader("counted", func() Reader {
		calls++
		return stubReader{}
	})

	if _, err := GetReader("counted"); err != nil {
		t.Fatal(err)
	}
	if _, err := GetReader("counted"); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("factory called %d times for 2 lookups, want 2", calls)
	}
}

func TestTagsAreCaseSensitive(t *testing.T) {
	RegisterReader("Mixed", func() Reader { return stubReader{} })

	if _, err := GetReader("mixed"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("GetReader(mixed) error = %v, want ErrUnknownFormat", err)
	}
}
