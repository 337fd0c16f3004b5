package http

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var (
	gzipWriters = sync.Pool{New: func() any { return gzip.NewWriter(io.Discard) }}
	gzipReaders = sync.Pool{New: func() any { return new(gzip.Reader) }}
)

// withGZip inflates gzip-encoded snapshot uploads and compresses responses
// for clients that send Accept-Encoding: gzip.
func withGZip(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hasEncoding(r.Header.Get("Content-Encoding")) && r.Body != nil {
			if err := inflateBody(r); err != nil {
				writeError(w, r, errInvalidGzip)
				return
			}
		}

		w.Header().Add("Vary", "Accept-Encoding")
		if !hasEncoding(r.Header.Get("Accept-Encoding")) || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		zw := gzipWriters.Get().(*gzip.Writer)
		zw.Reset(w)
		defer gzipWriters.Put(zw)

		gw := &gzipResponseWriter{ResponseWriter: w, zw: zw}
		next.ServeHTTP(gw, r)
		if gw.compressing {
			zw.Close()
		}
	})
}

func hasEncoding(header string) bool {
	return strings.Contains(header, "gzip")
}

// inflateBody swaps the request body for a pooled gzip reader. The
// inflated length is unknown, so Content-Length is dropped.
func inflateBody(r *http.Request) error {
	zr := gzipReaders.Get().(*gzip.Reader)
	if err := zr.Reset(r.Body); err != nil {
		gzipReaders.Put(zr)
		return err
	}

	r.Body = &pooledReader{Reader: zr, release: func() {
		zr.Close()
		gzipReaders.Put(zr)
	}}
	r.Header.Del("Content-Encoding")
	r.Header.Del("Content-Length")
	r.ContentLength = -1
	return nil
}

type pooledReader struct {
	io.Reader
	release func()
}

func (p *pooledReader) Close() error {
	if p.release != nil {
		p.release()
		p.release = nil
	}
	return nil
}

type gzipResponseWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
	compressing bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	// 204 and 304 carry no body to encode.
	if statusCode != http.StatusNoContent && statusCode != http.StatusNotModified {
		w.compressing = true
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if !w.compressing {
		return w.ResponseWriter.Write(data)
	}
	return w.zw.Write(data)
}
