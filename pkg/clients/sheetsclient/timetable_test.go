package sheetsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// fakeSheets records the API calls made against a spreadsheet holding the given tabs
type fakeSheets struct {
	mu      sync.Mutex
	tabs    []string
	calls   []string
	written *sheets.ValueRange
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := r.URL.Path
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/spreadsheets/sheet-1"):
		f.calls = append(f.calls, "get")
		sheetList := make([]map[string]any, 0, len(f.tabs))
		for _, tab := range f.tabs {
			sheetList = append(sheetList, map[string]any{"properties": map[string]any{"title": tab}})
		}
		json.NewEncoder(w).Encode(map[string]any{"spreadsheetId": "sheet-1", "sheets": sheetList})
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":batchUpdate"):
		f.calls = append(f.calls, "create")
		fmt.Fprint(w, `{"replies": [{"addSheet": {"properties": {"sheetId": 7}}}]}`)
	case r.Method == http.MethodPost && strings.HasSuffix(path, ":clear"):
		f.calls = append(f.calls, "clear")
		fmt.Fprint(w, `{}`)
	case r.Method == http.MethodPut && strings.Contains(path, "/values/"):
		f.calls = append(f.calls, "update")
		var vr sheets.ValueRange
		json.NewDecoder(r.Body).Decode(&vr)
		f.written = &vr
		fmt.Fprint(w, `{}`)
	default:
		http.Error(w, "unexpected request "+r.Method+" "+path, http.StatusNotFound)
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	service, err := sheets.NewService(context.Background(),
		option.WithHTTPClient(server.Client()),
		option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)
	return NewClientWithService(service)
}

func TestPublishTab_CreatesMissingTab(t *testing.T) {
	fake := &fakeSheets{tabs: []string{"Sheet1"}}
	client := newTestClient(t, fake)

	rows := [][]string{{"Semester Sem1"}, {"Time", "Monday"}, {"9AM", "Math (R1) - T1"}}
	require.NoError(t, client.PublishTab("sheet-1", "2025-09-01 3f2a9c1b", rows))

	assert.Equal(t, []string{"get", "create", "update"}, fake.calls)
	require.NotNil(t, fake.written)
	require.Len(t, fake.written.Values, 3)
	assert.Equal(t, "Math (R1) - T1", fake.written.Values[2][1])
}

func TestPublishTab_ClearsExistingTab(t *testing.T) {
	fake := &fakeSheets{tabs: []string{"Sheet1", "2025-09-01 3f2a9c1b"}}
	client := newTestClient(t, fake)

	require.NoError(t, client.PublishTab("sheet-1", "2025-09-01 3f2a9c1b", [][]string{{"Semester Sem1"}}))

	assert.Equal(t, []string{"get", "clear", "update"}, fake.calls)
}

func TestPublishTab_MetadataError(t *testing.T) {
	client := newTestClient(t, &fakeSheets{})

	err := client.PublishTab("unknown-sheet", "tab", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get spreadsheet metadata")
}

func TestToValues(t *testing.T) {
	values := toValues([][]string{{"a", "b"}, {}})

	assert.Equal(t, [][]interface{}{{"a", "b"}, {}}, values)
	assert.Equal(t, "'My tab'", quoteTab("My tab"))
}
