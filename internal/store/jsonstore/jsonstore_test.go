package jsonstore

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idilsaglam/ticketboard/internal/model"
)

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tickets.json")
	p := 3.0
	tickets := []model.Ticket{
		{ID: "CAM-1", Title: "Update profile", Status: "Todo", User: "Anoop", UserID: "usr-1", Priority: &p, Tags: []string{"Feature"}},
		{ID: "CAM-2", Title: "Dark mode", Status: "Backlog"},
	}

	if err := Save(path, tickets); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, tickets) {
		t.Errorf("Load() = %+v\nwant %+v", got, tickets)
	}
}

func TestLoad_ObjectPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.json")
	data := `{"tickets":[{"id":"CAM-1","title":"x","userId":"usr-1"}],"users":[{"id":"usr-1","name":"Yogesh"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].User != "Yogesh" {
		t.Errorf("Load() = %+v", got)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("[{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed json")
	}
}

func TestSave_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Save(path, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}
