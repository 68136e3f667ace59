package graph

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSitePath(t *testing.T) {
	assert.Equal(t, "/sites/Trading", extractSitePath("/sites/Trading/Shared%20Documents"))
	assert.Equal(t, "/sites/Trading", extractSitePath("/Sites/Trading"))
	assert.Equal(t, "", extractSitePath("/"))
	assert.Equal(t, "", extractSitePath("/personal/user_contoso_com"))
	assert.Equal(t, "", extractSitePath("/sites"))
}

func TestResolveDocumentWalksSiteDriveItem(t *testing.T) {
	var requests int64
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/contoso.sharepoint.com:/sites/Trading", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`{"id": "site-abc"}`))
	})
	mux.HandleFunc("/sites/site-abc/drive", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`{"id": "drive-def"}`))
	})
	mux.HandleFunc("/drives/drive-def/root:/tracker.xlsx", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		w.Write([]byte(`{"id": "item-ghi", "webUrl": "https://contoso.sharepoint.com/tracker.xlsx", "size": 12345}`))
	})

	client, _ := newTestClient(t, mux)

	doc, err := client.ResolveDocument(context.Background(),
		"https://contoso.sharepoint.com/sites/Trading", "tracker.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "site-abc", doc.SiteID)
	assert.Equal(t, "drive-def", doc.DriveID)
	assert.Equal(t, "item-ghi", doc.ItemID)
	assert.Equal(t, int64(12345), doc.Size)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))

	// A second resolution of the same link is served from the cache.
	again, err := client.ResolveDocument(context.Background(),
		"https://contoso.sharepoint.com/sites/Trading", "tracker.xlsx")
	require.NoError(t, err)
	assert.Same(t, doc, again)
	assert.Equal(t, int64(3), atomic.LoadInt64(&requests))
}

func TestResolveDocumentRootSite(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sites/contoso-my.sharepoint.com", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "site-root"}`))
	})
	mux.HandleFunc("/sites/site-root/drive", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "drive-1"}`))
	})
	mux.HandleFunc("/drives/drive-1/root:/book.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "item-1"}`))
	})

	client, _ := newTestClient(t, mux)

	doc, err := client.ResolveDocument(context.Background(),
		"https://contoso-my.sharepoint.com/personal/user_contoso_com", "book.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "site-root", doc.SiteID)
}

func TestResolveDocumentRejectsInvalidURL(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())

	_, err := client.ResolveDocument(context.Background(), "not a url", "book.xlsx")
	require.Error(t, err)
}
