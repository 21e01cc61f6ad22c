package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idilsaglam/ticketboard/internal/board"
	"github.com/idilsaglam/ticketboard/internal/model"
	"github.com/idilsaglam/ticketboard/internal/store/jsonstore"
)

const sampleFeed = `{"tickets":[
	{"id":"CAM-1","title":"B","status":"open","priority":2,"userId":"usr-1"},
	{"id":"CAM-2","title":"A","status":"open","priority":5,"userId":"usr-1"},
	{"id":"CAM-3","title":"C","status":"done","priority":1,"userId":"usr-2"}
],"users":[{"id":"usr-1","name":"Al"},{"id":"usr-2","name":"Bo"}]}`

// env isolates HOME and the token so tests never touch real state.
func env(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("TICKETBOARD_TOKEN", "")
	t.Setenv("NO_COLOR", "1")
	return dir
}

func writeFeed(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "feed.json")
	if err := os.WriteFile(path, []byte(sampleFeed), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestShow_JSON(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)

	code, out, errOut := run(t, "show", "--file", feed, "--format", "json")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	if strings.Index(out, `"open"`) > strings.Index(out, `"done"`) {
		t.Errorf("groups out of order:\n%s", out)
	}
	var got map[string][]model.Ticket
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not json: %v\n%s", err, out)
	}
	if got["open"][0].ID != "CAM-2" || got["open"][0].User != "Al" {
		t.Errorf("open = %+v", got["open"])
	}
}

func TestShow_GroupAndSortFlags(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)

	code, out, errOut := run(t, "show", "--file", feed, "-g", "user", "-s", "title", "-f", "yaml")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	al := strings.Index(out, "Al:")
	bo := strings.Index(out, "Bo:")
	if al < 0 || bo < 0 || al > bo {
		t.Errorf("yaml groups wrong:\n%s", out)
	}
	if strings.Index(out, "title: A") > strings.Index(out, "title: B") {
		t.Errorf("titles not sorted:\n%s", out)
	}
}

func TestShow_SingleGroup(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)

	code, out, errOut := run(t, "show", "--file", feed, "-g", "priority", "--group", "5", "-f", "json")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	var got map[string][]model.Ticket
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got["5"]) != 1 || got["5"][0].ID != "CAM-2" {
		t.Errorf("group 5 = %+v", got)
	}

	code, _, errOut = run(t, "show", "--file", feed, "--group", "blocked")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if !strings.Contains(errOut, "open, done") {
		t.Errorf("stderr should list the groups:\n%s", errOut)
	}
}

func TestShow_Text(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)

	code, out, errOut := run(t, "show", "--file", feed)
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	for _, want := range []string{"Kanban Tickets Board", "open (2)", "done (1)", "3 tickets in 2 groups"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShow_FetchFailure(t *testing.T) {
	env(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	code, out, errOut := run(t, "show", "--endpoint", srv.URL)
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if out != "" {
		t.Errorf("no board should be printed, got:\n%s", out)
	}
	if !strings.Contains(errOut, board.FailureMessage) {
		t.Errorf("stderr missing failure message:\n%s", errOut)
	}
}

func TestShow_Endpoint(t *testing.T) {
	env(t)
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()
	t.Setenv("TICKETBOARD_TOKEN", "tok")

	code, out, errOut := run(t, "show", "--endpoint", srv.URL, "-f", "json")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(out, "CAM-3") {
		t.Errorf("output missing tickets:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)

	tests := [][]string{
		{"show", "--file", feed, "--group-by", "title"},
		{"show", "--file", feed, "--format", "xml"},
		{"show", "--bogus"},
		{"frobnicate"},
		{"pull", "--file", feed},
	}
	for _, args := range tests {
		if code, _, _ := run(t, args...); code != 2 {
			t.Errorf("%v: exit = %d, want 2", args, code)
		}
	}
}

func TestConfigFile(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)
	cfgPath := filepath.Join(dir, "config.toml")
	content := "[source]\nfile = \"" + feed + "\"\n\n[board]\ngroup_by = \"priority\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := run(t, "--config", cfgPath, "show", "-f", "json")
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	var got map[string][]model.Ticket
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || len(got["5"]) != 1 {
		t.Errorf("board grouped by priority = %+v", got)
	}
}

func TestPull(t *testing.T) {
	dir := env(t)
	feed := writeFeed(t, dir)
	out := filepath.Join(dir, "snap", "tickets.json")

	code, stdout, errOut := run(t, "pull", "--file", feed, "-o", out)
	if code != 0 {
		t.Fatalf("exit = %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(stdout, "3 tickets saved") {
		t.Errorf("stdout = %q", stdout)
	}
	tickets, err := jsonstore.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(tickets) != 3 || tickets[0].User != "Al" {
		t.Errorf("snapshot = %+v", tickets)
	}
}

func TestAuthFlow(t *testing.T) {
	env(t)

	if code, out, _ := run(t, "auth", "status"); code != 0 || !strings.Contains(out, "not logged in") {
		t.Errorf("status before login = %d %q", code, out)
	}
	if code, _, _ := run(t, "auth", "whoami"); code != 2 {
		t.Errorf("whoami before login exit = %d, want 2", code)
	}
	if code, _, errOut := run(t, "auth", "login", "--token", "Bearer opaque-token"); code != 0 {
		t.Fatalf("login exit = %d: %s", code, errOut)
	}
	if code, out, _ := run(t, "auth", "status"); code != 0 || !strings.Contains(out, "source: file") {
		t.Errorf("status after login = %d %q", code, out)
	}
	if _, out, _ := run(t, "auth", "whoami"); !strings.Contains(out, "Opaque token") {
		t.Errorf("whoami = %q", out)
	}
	if code, out, _ := run(t, "auth", "logout"); code != 0 || !strings.Contains(out, "logged out") {
		t.Errorf("logout = %d %q", code, out)
	}
}
