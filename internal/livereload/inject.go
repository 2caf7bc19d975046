package livereload

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// Snippet is the client added to every HTML page in dev mode.
const Snippet = `<script>
(function () {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "` + Path + `");
  ws.onmessage = function (e) {
    try {
      if (JSON.parse(e.data).type === "reload") location.reload();
    } catch (_) {}
  };
})();
</script>
`

// InjectSnippet inserts the client before the last </body>, or appends it
// when there is none.
func InjectSnippet(html []byte) []byte {
	i := bytes.LastIndex(html, []byte("</body>"))
	if i < 0 {
		return append(html, Snippet...)
	}
	out := make([]byte, 0, len(html)+len(Snippet))
	out = append(out, html[:i]...)
	out = append(out, Snippet...)
	out = append(out, html[i:]...)
	return out
}

// Inject wraps next so HTML responses carry the reload client.
func Inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == Path {
			next.ServeHTTP(w, r)
			return
		}
		// Partial content would not line up with the injected body.
		r.Header.Del("Range")

		bw := &bufferedWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)
		bw.flush()
	})
}

// bufferedWriter holds back HTML bodies so the snippet can be added. Other
// content types are written straight through.
type bufferedWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	html        bool
	buf         bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(status int) {
	if b.wroteHeader {
		return
	}
	b.wroteHeader = true
	b.status = status
	b.html = strings.HasPrefix(b.Header().Get("Content-Type"), "text/html")
	if !b.html {
		b.ResponseWriter.WriteHeader(status)
	}
}

func (b *bufferedWriter) Write(p []byte) (int, error) {
	if !b.wroteHeader {
		if b.Header().Get("Content-Type") == "" {
			b.Header().Set("Content-Type", http.DetectContentType(p))
		}
		b.WriteHeader(http.StatusOK)
	}
	if b.html {
		return b.buf.Write(p)
	}
	return b.ResponseWriter.Write(p)
}

func (b *bufferedWriter) flush() {
	if !b.wroteHeader || !b.html {
		return
	}
	body := InjectSnippet(b.buf.Bytes())
	b.Header().Set("Content-Length", strconv.Itoa(len(body)))
	b.ResponseWriter.WriteHeader(b.status)
	b.ResponseWriter.Write(body)
}
