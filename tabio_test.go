package tabio_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/joiningdata/tabio"
	"github.com/joiningdata/tabio/formats"
	"github.com/joiningdata/tabio/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tab := table.New([]string{"id", "name"})
	for _, row := range [][]string{{"101", "Neo"}, {"102", "Trinity"}} {
		if err := tab.AppendRow(row); err != nil {
			t.Fatal(err)
		}
	}
	return tab
}

func TestSaveThenLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folder", "processed.csv")
	want := sample(t)

	if err := tabio.Save(want, path, "csv", formats.Options{}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := tabio.Load(path, "csv", formats.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !got.Equal(want) {
		t.Error("facade round trip differs")
	}
	if got.Fingerprint() != want.Fingerprint() {
		t.Error("fingerprints differ after round trip")
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	if _, err := tabio.Load("file.txt", "unknown_format", formats.Options{}); !errors.Is(err, formats.ErrUnknownFormat) {
		t.Fatalf("Load error = %v, want formats.ErrUnknownFormat", err)
	}
	if err := tabio.Save(sample(t), "file.txt", "unknown_format", formats.Options{}); !errors.Is(err, formats.ErrUnknownFormat) {
		t.Fatalf("Save error = %v, want formats.ErrUnknownFormat", err)
	}
}

func TestLoadPropagatesStrategyErrors(t *testing.T) {
	_, err := tabio.Load(filepath.Join(t.TempDir(), "ghost.csv"), "csv", formats.Options{})
	if !errors.Is(err, formats.ErrSourceNotFound) {
		t.Fatalf("Load error = %v, want formats.ErrSourceNotFound passed through", err)
	}
}

type echoReader struct{}

func (echoReader) Read(source string, _ formats.Options) (*table.Table, error) {
	tab := table.New([]string{"source"})
	if err := tab.AppendRow([]string{source}); err != nil {
		return nil, err
	}
	return tab, nil
}

type sinkWriter struct {
	seen *[]string
}

func (w sinkWriter) Write(_ *table.Table, target string, _ formats.Options) error {
	*w.seen = append(*w.seen, target)
	return nil
}

func TestRuntimeFormatExtension(t *testing.T) {
	var seen []string
	formats.RegisterReader("json", func() formats.Reader { return echoReader{} })
	formats.RegisterWriter("json", func() formats.Writer { return sinkWriter{seen: &seen} })

	tab, err := tabio.Load("fake.json", "json", formats.Options{})
	if err != nil {
		t.Fatalf("Load via runtime-registered format: %v", err)
	}
	if tab.Row(0)[0] != "fake.json" {
		t.Errorf("reader saw source %q", tab.Row(0)[0])
	}

	if err := tabio.Save(tab, "out.json", "json", formats.Options{}); err != nil {
		t.Fatalf("Save via runtime-registered format: %v", err)
	}
	if len(seen) != 1 || seen[0] != "out.json" {
		t.Errorf("writer saw %v, want [out.json]", seen)
	}
}
