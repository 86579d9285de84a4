package cflog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/klauspost/compress/gzip"
)

const testLog = "#Version: 1.0\n" +
	"#Fields: date time c-ip cs-method\n" +
	"2024-01-01\t13:45:02\t192.0.2.10\tGET\n" +
	"2024-01-01\t13:45:03\t-\tPUT\n" +
	"2024-01-01\t13:45:04\t192.0.2.11\tGET\n"

func writeLogFile(t *testing.T, name, content string, compress bool) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	data := []byte(content)
	if compress {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(data); err != nil {
			t.Fatalf("gzip write: %v", err)
		}
		if err := gz.Close(); err != nil {
			t.Fatalf("gzip close: %v", err)
		}
		data = buf.Bytes()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func TestReader_IteratesRecords(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		compress bool
	}{
		{"plain", "access.log", false},
		{"gzip", "E123.2024-01-01-13.abcd.gz", true},
		{"gzip without suffix", "access.log", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := writeLogFile(t, tt.filename, testLog, tt.compress)

			r, err := Open(ctx, path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			defer r.Close()

			if r.Schema().Version != "1.0" {
				t.Errorf("Version = %q, want 1.0", r.Schema().Version)
			}

			var methods []string
			for {
				rec, err := r.Next(ctx)
				if errors.Is(err, ErrEndOfLog) {
					break
				}
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				v, err := rec.Field("cs-method")
				if err != nil {
					t.Fatalf("Field(cs-method) error = %v", err)
				}
				methods = append(methods, v.String())
			}

			want := []string{"GET", "PUT", "GET"}
			if strings.Join(methods, ",") != strings.Join(want, ",") {
				t.Errorf("methods = %v, want %v", methods, want)
			}
		})
	}
}

func TestReader_ExhaustionIsTerminal(t *testing.T) {
	ctx := context.Background()
	path := writeLogFile(t, "access.log", testLog, false)

	r, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	for {
		if _, err := r.Next(ctx); err != nil {
			break
		}
	}

	for i := 0; i < 3; i++ {
		if _, err := r.Next(ctx); !errors.Is(err, ErrEndOfLog) {
			t.Fatalf("Next() after exhaustion = %v, want ErrEndOfLog", err)
		}
	}
	if r.Record() != nil {
		t.Error("Record() after exhaustion non-nil, want nil")
	}
}

func TestReader_FieldAccessors(t *testing.T) {
	ctx := context.Background()
	path := writeLogFile(t, "access.log", testLog, false)

	r, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	// Before the first advance there is no current record.
	if _, err := r.Field("c-ip"); !errors.Is(err, ErrNoCurrentRecord) {
		t.Errorf("Field() before advance = %v, want ErrNoCurrentRecord", err)
	}
	if _, err := r.FormatTimestamp("%Y"); !errors.Is(err, ErrNoCurrentRecord) {
		t.Errorf("FormatTimestamp() before advance = %v, want ErrNoCurrentRecord", err)
	}

	if _, err := r.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	v, err := r.Field("c-ip")
	if err != nil {
		t.Fatalf("Field(c-ip) error = %v", err)
	}
	if v.String() != "192.0.2.10" {
		t.Errorf("c-ip = %q, want 192.0.2.10", v.String())
	}

	if _, err := r.Field("sc-status"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Field(sc-status) = %v, want ErrUnknownField", err)
	}

	got, err := r.FormatTimestamp("%Y-%m-%d %H:%M:%S")
	if err != nil {
		t.Fatalf("FormatTimestamp() error = %v", err)
	}
	if got != "2024-01-01 13:45:02" {
		t.Errorf("FormatTimestamp() = %q, want %q", got, "2024-01-01 13:45:02")
	}
}

func TestReader_CorruptLineFailsSession(t *testing.T) {
	// Third data line is missing a token.
	corrupt := "#Version: 1.0\n" +
		"#Fields: date time c-ip cs-method\n" +
		"2024-01-01\t13:45:02\t192.0.2.10\tGET\n" +
		"2024-01-01\t13:45:03\tGET\n"

	ctx := context.Background()
	path := writeLogFile(t, "access.log", corrupt, false)

	r, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	if _, err := r.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	_, err = r.Next(ctx)
	if !errors.Is(err, ErrFieldCountMismatch) {
		t.Fatalf("Next() = %v, want ErrFieldCountMismatch", err)
	}
	if !strings.Contains(err.Error(), "line 4") {
		t.Errorf("error %q does not identify line 4", err)
	}

	// The error is absorbing: later calls return it unchanged, and
	// there is no current record.
	if _, err2 := r.Next(ctx); !errors.Is(err2, ErrFieldCountMismatch) {
		t.Errorf("Next() after error = %v, want same error", err2)
	}
	if _, err := r.Field("c-ip"); !errors.Is(err, ErrNoCurrentRecord) {
		t.Errorf("Field() after error = %v, want ErrNoCurrentRecord", err)
	}
}

func TestReader_MalformedHeader(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"only version line", "#Version: 1.0\n"},
		{"data before header", "2024-01-01\t00:00:00\n#Fields: date time\n"},
		{"fields line first", "#Fields: date time\n#Version: 1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			path := writeLogFile(t, "access.log", tt.content, false)

			_, err := Open(ctx, path)
			if !errors.Is(err, ErrMalformedHeader) {
				t.Errorf("Open() error = %v, want ErrMalformedHeader", err)
			}
		})
	}
}

func TestReader_MissingFile(t *testing.T) {
	ctx := context.Background()
	_, err := Open(ctx, filepath.Join(t.TempDir(), "nope.log"))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Open() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestReader_Close(t *testing.T) {
	ctx := context.Background()
	path := writeLogFile(t, "access.log", testLog, false)

	r, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := r.Next(ctx); err != nil {
		t.Fatalf("Next() error = %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// Second close is a no-op, not an error.
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v, want nil", err)
	}

	if _, err := r.Next(ctx); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Next() after close = %v, want ErrSessionClosed", err)
	}
	if _, err := r.Field("c-ip"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("Field() after close = %v, want ErrSessionClosed", err)
	}
	if _, err := r.FormatTimestamp("%Y"); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("FormatTimestamp() after close = %v, want ErrSessionClosed", err)
	}
	if r.Record() != nil {
		t.Error("Record() after close non-nil, want nil")
	}
}

func TestReader_CancelledContext(t *testing.T) {
	path := writeLogFile(t, "access.log", testLog, false)

	r, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next() with cancelled ctx = %v, want context.Canceled", err)
	}
}

// fakeObjectGetter serves objects from memory, mimicking the S3 client.
type fakeObjectGetter struct {
	objects map[string][]byte
}

func (f *fakeObjectGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := *params.Bucket + "/" + *params.Key
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey: the specified key does not exist")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestReader_S3Locator(t *testing.T) {
	ctx := context.Background()
	getter := &fakeObjectGetter{objects: map[string][]byte{
		"my-logs/E123.2024-01-01-13.abcd.gz": []byte(testLog),
	}}

	r, err := Open(ctx, "s3://my-logs/E123.2024-01-01-13.abcd.gz", WithS3Client(getter))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()

	rec, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	ts, ok := rec.Timestamp()
	if !ok {
		t.Fatal("Timestamp() ok = false, want true")
	}
	if want := time.Date(2024, 1, 1, 13, 45, 2, 0, time.UTC); !ts.Equal(want) {
		t.Errorf("Timestamp() = %v, want %v", ts, want)
	}
}

func TestReader_S3ObjectMissing(t *testing.T) {
	ctx := context.Background()
	getter := &fakeObjectGetter{objects: map[string][]byte{}}

	_, err := Open(ctx, "s3://my-logs/missing.gz", WithS3Client(getter))
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Open() error = %v, want ErrSourceUnavailable", err)
	}
}
