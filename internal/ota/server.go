package ota

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultListen = ":8266"

var (
	ErrAuth    = errors.New("auth failed")
	ErrBusy    = errors.New("update already in progress")
	ErrBegin   = errors.New("begin failed")
	ErrReceive = errors.New("receive failed")
	ErrEnd     = errors.New("end failed")
)

// Feedback is told about the lifecycle of an update, to show it to whoever is looking at the strip.
type Feedback interface {
	UpdateStarted()
	UpdateProgress(percentage int)
	UpdateSucceeded()
	UpdateFailed(err error)
}

type Config struct {
	Listen   string
	Password string
	// Target is the file that is replaced by an uploaded binary.
	Target string
}

type Server struct {
	conf     Config
	feedback Feedback
	server   http.Server
	restarts chan string

	busy sync.Mutex
}

func NewServer(conf Config, feedback Feedback) *Server {
	if conf.Listen == "" {
		conf.Listen = DefaultListen
	}

	s := &Server{
		conf:     conf,
		feedback: feedback,
		restarts: make(chan string, 1),
	}
	s.server = http.Server{
		Addr:              conf.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Restarts delivers the path of the new binary after a successful update.
func (s *Server) Restarts() <-chan string {
	return s.restarts
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", uploadForm)
	mux.HandleFunc("/update", s.update)
	return mux
}

func (s *Server) Listen() error {
	log.Infof("Accepting firmware updates on %v", s.server.Addr)
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	log.Debug("Closing update server...")
	return s.server.Shutdown(ctx)
}

const form = `
<html>
<body style="font-family:sans-serif; font-size:12pt; background-color: #121212; color: #eee;">
<br><br><br>
<center>
<h1>Strip firmware update</h1>
<br>
<form action="/update" method="post" enctype="multipart/form-data">
<input type="file" name="firmware"/>
<br><br>
<input type="submit" value="Upload"/>
</form>
</center>
</body>
</html>
`

func uploadForm(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != "/" {
		http.NotFound(w, req)
		return
	}
	io.WriteString(w, form)
}

func (s *Server) update(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if !s.authorized(req) {
		s.fail(w, http.StatusUnauthorized, ErrAuth)
		return
	}

	if !s.busy.TryLock() {
		http.Error(w, ErrBusy.Error(), http.StatusConflict)
		return
	}
	defer s.busy.Unlock()

	body, err := firmwareBody(req)
	if err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrBegin, err))
		return
	}

	log.Infof("Receiving firmware update from %s", req.RemoteAddr)
	s.feedback.UpdateStarted()

	if err := s.receive(body, req.ContentLength); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.feedback.UpdateSucceeded()
	io.WriteString(w, "OK\n")

	select {
	case s.restarts <- s.conf.Target:
	default:
	}
}

func (s *Server) authorized(req *http.Request) bool {
	if s.conf.Password == "" {
		return true
	}
	_, pass, ok := req.BasicAuth()
	return ok && subtle.ConstantTimeCompare([]byte(pass), []byte(s.conf.Password)) == 1
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.feedback.UpdateFailed(err)
	http.Error(w, err.Error(), status)
}

// firmwareBody finds the uploaded binary, either as the raw request body or as the first file of a form.
func firmwareBody(req *http.Request) (io.Reader, error) {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return req.Body, nil
	}

	mr, err := req.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err != nil {
			return nil, fmt.Errorf("no firmware in form: %w", err)
		}
		if part.FileName() != "" {
			return part, nil
		}
	}
}

func (s *Server) receive(body io.Reader, total int64) error {
	tmp := s.conf.Target + ".new"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0755)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBegin, err)
	}

	pw := &progressWriter{w: f, total: total, report: s.feedback.UpdateProgress}
	_, err = io.Copy(pw, body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrReceive, err)
	}
	if pw.written == 0 {
		os.Remove(tmp)
		return fmt.Errorf("%w: empty firmware", ErrReceive)
	}
	pw.done()

	if err := os.Rename(tmp, s.conf.Target); err != nil {
		return fmt.Errorf("%w: %v", ErrEnd, err)
	}
	log.Infof("Wrote %d bytes to %s", pw.written, s.conf.Target)
	return nil
}

type progressWriter struct {
	w       io.Writer
	total   int64
	written int64
	report  func(int)
	last    int
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.total > 0 {
		pct := int(p.written * 100 / p.total)
		if pct > 100 {
			pct = 100
		}
		p.last = pct
		p.report(pct)
	}
	return n, err
}

// done reports completion, which a total that includes multipart framing never reaches on its own.
func (p *progressWriter) done() {
	if p.last != 100 {
		p.last = 100
		p.report(100)
	}
}
