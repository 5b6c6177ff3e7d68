package webfront

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
)

// ServeDocument writes the file at name as the response. The file is opened
// for every call, so replacing it on disk is visible to the next request.
func ServeDocument(w http.ResponseWriter, r *http.Request, name string) {
	file, err := os.Open(name)
	if err != nil {
		writeFileError(w, err)
		return
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		writeFileError(w, err)
		return
	}
	if info.IsDir() {
		writeStatus(w, http.StatusNotFound)
		return
	}
	w.Header().Set("ETag", documentTag(info))
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

func documentTag(info fs.FileInfo) string {
	return fmt.Sprintf(`W/"%x-%x"`, info.Size(), info.ModTime().UnixNano())
}

func writeFileError(w http.ResponseWriter, err error) {
	if errors.Is(err, fs.ErrNotExist) {
		writeStatus(w, http.StatusNotFound)
	} else {
		writeStatus(w, http.StatusInternalServerError)
	}
}

func writeStatus(w http.ResponseWriter, code int) {
	http.Error(w, http.StatusText(code), code)
}
