package tasks

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeYoto is an httptest-backed stand-in for the Yoto API.
type fakeYoto struct {
	mu sync.Mutex

	readyAfter  int    // transcode polls before the hash appears; <0 never
	transcode   string // transcode JSON once ready
	card        string // card JSON for GET /content/{id}
	putStatus   int
	saveStatus  int
	saveBody    string
	failDetails map[string]bool

	fakeCalls
	savedPayload []byte
}

type fakeCalls struct {
	uploadCalls    int
	putCalls       int
	transcodeCalls int
	fetchCalls     int
	saveCalls      int
	putBody        []byte
	putContentType string
}

// calls returns a snapshot of the request counters.
func (f *fakeYoto) calls() fakeCalls {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fakeCalls
}

func newFakeYoto() *fakeYoto {
	return &fakeYoto{
		transcode: `{"transcodedSha256":"abc123","transcodedInfo":{"duration":90.5,"fileSize":1572864,"channels":"stereo","format":"aac","metadata":{"title":"Tagged Title"}}}`,
		card:      `{"cardId":"card-1","title":"Old Title","customField":{"keep":true},"content":{"chapters":[{"key":"a","title":"x","tracks":[]}],"config":{"autoadvance":"next"}},"metadata":{"author":"me"}}`,
		putStatus: http.StatusOK,
	}
}

func (f *fakeYoto) server(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/media/transcode/audio/uploadUrl":
			f.uploadCalls++
			w.Write([]byte(`{"upload":{"uploadUrl":"` + srv.URL + `/put","uploadId":"up-1"}}`))

		case r.Method == http.MethodPut && r.URL.Path == "/put":
			f.putCalls++
			f.putBody, _ = io.ReadAll(r.Body)
			f.putContentType = r.Header.Get("Content-Type")
			w.WriteHeader(f.putStatus)

		case r.Method == http.MethodGet && r.URL.Path == "/media/upload/up-1/transcoded":
			f.transcodeCalls++
			if f.readyAfter >= 0 && f.transcodeCalls > f.readyAfter {
				w.Write([]byte(`{"transcode":` + f.transcode + `}`))
				return
			}
			w.Write([]byte(`{"transcode":{"transcodedInfo":null}}`))

		case r.Method == http.MethodGet && r.URL.Path == "/content/mine":
			w.Write([]byte(`{"cards":[{"cardId":"a","title":"A summary"},{"cardId":"b","title":"B summary"},{"cardId":"c","title":"C summary"}]}`))

		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/content/"):
			f.fetchCalls++
			id := strings.TrimPrefix(r.URL.Path, "/content/")
			if f.failDetails[id] {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			if id == "card-1" {
				w.Write([]byte(`{"card":` + f.card + `}`))
				return
			}
			w.Write([]byte(`{"card":{"cardId":"` + id + `","title":"` + strings.ToUpper(id) + ` detailed"}}`))

		case r.Method == http.MethodPost && r.URL.Path == "/content":
			f.saveCalls++
			f.savedPayload, _ = io.ReadAll(r.Body)
			if f.saveStatus != 0 && f.saveStatus != http.StatusOK {
				w.WriteHeader(f.saveStatus)
				w.Write([]byte(f.saveBody))
				return
			}
			w.Write([]byte(`{"card":` + string(f.savedPayload) + `}`))

		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func (f *fakeYoto) payload(t *testing.T) map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	var m map[string]any
	if err := json.Unmarshal(f.savedPayload, &m); err != nil {
		t.Fatalf("failed to decode saved payload: %v", err)
	}
	return m
}

// eventLog collects progress events.
type eventLog struct {
	events []ProgressEvent
}

func (l *eventLog) record(ev ProgressEvent) {
	l.events = append(l.events, ev)
}

func (l *eventLog) failures() []ProgressEvent {
	var out []ProgressEvent
	for _, ev := range l.events {
		if ev.Failed() {
			out = append(out, ev)
		}
	}
	return out
}
