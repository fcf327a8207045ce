package bridge

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/pitwall/paddockpress/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiles(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "list", r.URL.Query().Get("action"))
		assert.Equal(t, "sekrit", r.URL.Query().Get("key"))
		_, _ = w.Write([]byte(`[{"name":"a.jpg","url":"https://cdn/a.jpg","size":123,"type":"image/jpeg","date":1700000000}]`))
	})
	defer srv.Close()

	files, err := c.ListFiles(context.Background())
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "a.jpg", files[0].Name)
	assert.Equal(t, int64(1700000000), files[0].Date)
}

func TestListFiles_MalformedListing(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops":true}`))
	})
	defer srv.Close()

	_, err := c.ListFiles(context.Background())
	require.ErrorIs(t, err, common.ErrorProtocol)
}

func TestUploadFile(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "sekrit", r.Header.Get(common.KeyHeaderName))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "car.jpg", hdr.Filename)

		_, _ = w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	err := c.UploadFile(context.Background(), "car.jpg", "image/jpeg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
}

func TestUploadFile_RemoteFailure(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":"dir not writable","debug":"/var/uploads"}`))
	})
	defer srv.Close()

	err := c.UploadFile(context.Background(), "car.jpg", "image/jpeg", strings.NewReader("x"))
	require.ErrorIs(t, err, common.ErrorProtocol)
	assert.Contains(t, err.Error(), "dir not writable")
	assert.Contains(t, err.Error(), "/var/uploads")
}

func TestDeleteFile(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "delete", r.PostFormValue("action"))
		assert.Equal(t, "old.png", r.PostFormValue("file"))
		assert.Equal(t, "sekrit", r.PostFormValue("key"))
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	defer srv.Close()

	require.NoError(t, c.DeleteFile(context.Background(), "old.png"))
}

func TestDebugPaths(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "debug_paths", r.URL.Query().Get("action"))
		_, _ = w.Write([]byte(`{"dir_writable":true,"php_user":"www-data","file_count":7,"upload_dir":"/u","v":"3"}`))
	})
	defer srv.Close()

	info, err := c.DebugPaths(context.Background())
	require.NoError(t, err)
	assert.True(t, info.DirWritable)
	assert.Equal(t, 7, info.FileCount)
}
