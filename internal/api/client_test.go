package api

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c := New("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.baseURL)
	require.NotNil(t, c.httpClient)
}

func TestOperationURL(t *testing.T) {
	c := New("http://localhost:8000")
	assert.Equal(t, "http://localhost:8000/ajax/getMessages", c.operationURL(OpGetMessages, NoKey))
	assert.Equal(t, "http://localhost:8000/ajax/locationUpdate/7", c.operationURL(OpLocationUpdate, 7))
}

func TestInvoke_SendsFormAndHeader(t *testing.T) {
	var gotHeader, gotLat, gotName string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotHeader = r.Header.Get("X-Requested-With")
		gotLat = r.FormValue("lat")
		gotName = r.FormValue("name")
		w.Write([]byte(`{"result":true,"newId":42}`))
	}))
	defer server.Close()

	c := New(server.URL)
	doneCh := make(chan Response, 1)
	c.Invoke(OpLocationCreate, 3, map[string]string{
		"lat":  "48.86626",
		"name": "Tour\r\nEiffel \"la dame\"",
	}, func(r Response) { doneCh <- r })

	var resp Response
	select {
	case resp = <-doneCh:
	case <-time.After(5 * time.Second):
		t.Fatal("completion never delivered")
	}

	assert.Equal(t, "XMLHttpRequest", gotHeader)
	assert.Equal(t, "48.86626", gotLat)
	assert.Equal(t, "Tour Eiffel ''la dame''", gotName)
	assert.True(t, resp.OK())
	assert.True(t, resp.Result())
	assert.Equal(t, 42, resp.NewID())
}

func TestInvoke_DoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	c := New(server.URL)
	doneCh := make(chan Response, 1)

	start := time.Now()
	c.Invoke(OpMapUpdate, 1, nil, func(r Response) { doneCh <- r })
	assert.Less(t, time.Since(start), time.Second, "Invoke must return immediately")

	close(release)
	select {
	case resp := <-doneCh:
		assert.True(t, resp.Result())
	case <-time.After(5 * time.Second):
		t.Fatal("completion never delivered")
	}
}

func TestInvoke_ExactlyOneCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":false}`))
	}))
	defer server.Close()

	var calls atomic.Int32
	c := New(server.URL)
	c.Invoke(OpLocationDelete, 9, nil, func(Response) { calls.Add(1) })

	assert.Eventually(t, func() bool { return calls.Load() == 1 }, 5*time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestInvoke_TransportFailureNilBody(t *testing.T) {
	// Port from TEST-NET, nothing listens there.
	c := New("http://127.0.0.1:1")
	doneCh := make(chan Response, 1)
	c.Invoke(OpLocationCreate, 1, nil, func(r Response) { doneCh <- r })

	select {
	case resp := <-doneCh:
		assert.Nil(t, resp.Body)
		assert.False(t, resp.OK())
		assert.False(t, resp.Result())
	case <-time.After(10 * time.Second):
		t.Fatal("completion never delivered")
	}
}

func TestInvoke_UnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := New(server.URL)
	doneCh := make(chan Response, 1)
	c.Invoke(OpGetMessages, NoKey, map[string]string{"lang": "en"}, func(r Response) { doneCh <- r })

	select {
	case resp := <-doneCh:
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Nil(t, resp.Body)
		assert.False(t, resp.OK())
	case <-time.After(5 * time.Second):
		t.Fatal("completion never delivered")
	}
}

func TestInvoke_Non2xxSurfacedAsIs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"result":false}`))
	}))
	defer server.Close()

	c := New(server.URL)
	doneCh := make(chan Response, 1)
	c.Invoke(OpLocationUpdate, 7, nil, func(r Response) { doneCh <- r })

	select {
	case resp := <-doneCh:
		assert.Equal(t, http.StatusForbidden, resp.Status)
		require.NotNil(t, resp.Body)
		assert.False(t, resp.OK())
		assert.False(t, resp.Result())
	case <-time.After(5 * time.Second):
		t.Fatal("completion never delivered")
	}
}

func TestWithScheduler_RoutesCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	scheduled := make(chan func(), 1)
	c := New(server.URL, WithScheduler(func(name string, task func()) {
		scheduled <- task
	}))

	ran := false
	c.Invoke(OpMapCenterUpdate, 2, nil, func(Response) { ran = true })

	select {
	case task := <-scheduled:
		assert.False(t, ran, "done must not run before the scheduler executes the task")
		task()
		assert.True(t, ran)
	case <-time.After(5 * time.Second):
		t.Fatal("completion never scheduled")
	}
}

func TestWithObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":true}`))
	}))
	defer server.Close()

	type seen struct {
		op Operation
		ok bool
	}
	seenCh := make(chan seen, 1)
	c := New(server.URL, WithObserver(func(op Operation, d time.Duration, ok bool) {
		seenCh <- seen{op, ok}
	}))

	c.Invoke(OpLocationCreate, 1, nil, nil)

	select {
	case s := <-seenCh:
		assert.Equal(t, OpLocationCreate, s.op)
		assert.True(t, s.ok)
	case <-time.After(5 * time.Second):
		t.Fatal("observer never called")
	}
}
