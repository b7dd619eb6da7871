package services

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"strings"

	"github.com/thaole73/snowload/pkg/snowload"
)

type mockLogger struct {
	warnings []string
	infos    []string
}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(format string, _ ...interface{}) {
	m.infos = append(m.infos, format)
}
func (m *mockLogger) Warn(format string, _ ...interface{}) {
	m.warnings = append(m.warnings, format)
}
func (m *mockLogger) Error(_ string, _ ...interface{}) {}

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}

type mockScanner struct {
	candidates []snowload.CandidateFile
	err        error
}

func (m *mockScanner) Discover(_ string) ([]snowload.CandidateFile, error) {
	return m.candidates, m.err
}

type mockRegistry struct {
	entries map[string]snowload.TableMapping
}

func (m *mockRegistry) Lookup(canonicalName string) (snowload.TableMapping, bool) {
	mapping, ok := m.entries[canonicalName]
	return mapping, ok
}

type mockSchemaReader struct {
	ddl  map[string]string
	errs map[string]error
}

func (m *mockSchemaReader) Read(schemaFile string) (string, error) {
	if err, ok := m.errs[schemaFile]; ok {
		return "", err
	}
	return m.ddl[schemaFile], nil
}

type mockLedger struct {
	processed map[string]struct{}
	loadErr   error
	resetErr  error
	commitErr error

	resets  int
	commits []string
}

func (m *mockLedger) Load() (map[string]struct{}, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.processed == nil {
		return map[string]struct{}{}, nil
	}
	return m.processed, nil
}

func (m *mockLedger) Reset() error {
	if m.resetErr != nil {
		return m.resetErr
	}
	m.resets++
	m.processed = map[string]struct{}{}
	return nil
}

func (m *mockLedger) Commit(fileID string) error {
	if m.commitErr != nil {
		return m.commitErr
	}
	m.commits = append(m.commits, fileID)
	return nil
}

type mockRunLock struct {
	acquireErr error
	acquired   int
	released   int
}

func (m *mockRunLock) Acquire() error {
	if m.acquireErr != nil {
		return m.acquireErr
	}
	m.acquired++
	return nil
}

func (m *mockRunLock) Release() error {
	m.released++
	return nil
}

type mockStager struct {
	err  error
	keys []string
}

func (m *mockStager) Stage(_ context.Context, key string, body io.Reader) error {
	if m.err != nil {
		return m.err
	}
	io.Copy(io.Discard, body)
	m.keys = append(m.keys, key)
	return nil
}

type mockSession struct {
	execErr    error
	execErrOn  string // fail Exec only when the statement contains this
	loadErr    error
	reports    []snowload.LoadReport
	statements []string
	loads      []string
	closed     int
}

func (m *mockSession) Exec(_ context.Context, statement string) error {
	if m.execErr != nil && (m.execErrOn == "" || strings.Contains(statement, m.execErrOn)) {
		return m.execErr
	}
	m.statements = append(m.statements, statement)
	return nil
}

func (m *mockSession) Load(_ context.Context, statement string) ([]snowload.LoadReport, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.loads = append(m.loads, statement)
	return m.reports, nil
}

func (m *mockSession) Close() error {
	m.closed++
	return nil
}

type mockConnector struct {
	session *mockSession
	err     error
}

func (m *mockConnector) Connect(_ context.Context) (snowload.WarehouseSession, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

type mockOpener struct {
	err error
}

func (m *mockOpener) Open(_ string) (fs.File, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &stubFile{Reader: bytes.NewReader([]byte("id,value\n1,a\n"))}, nil
}

type stubFile struct {
	*bytes.Reader
}

func (f *stubFile) Stat() (fs.FileInfo, error) { return nil, nil }
func (f *stubFile) Close() error               { return nil }
