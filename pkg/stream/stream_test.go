package stream

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"step 1\n", "step 1"},
		{"  padded \r\n", "padded"},
		{"a\rb\nc", "abc"},
		{"\n", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestParseAndText(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		isJSON  bool
		wantErr string
	}{
		{"stream message", `{"stream":"Step 1/3 : FROM node\n"}`, "Step 1/3 : FROM node", true, ""},
		{"plain text", "Uploading context", "Uploading context", false, ""},
		{"broken json", `{"stream": "x"`, `{"stream": "x"`, false, ""},
		{"empty stream", `{"stream":""}`, "", true, ""},
		{"blank stream", `{"stream":"  \r\n"}`, "", true, ""},
		{"null stream", `{"stream":null}`, `{"stream":null}`, true, ""},
		{"json without stream", `{"status":"Pulling"}`, `{"status":"Pulling"}`, true, ""},
		{"json scalar", `42`, "42", false, ""},
		{"error detail", `{"errorDetail":{"message":"build failed"},"error":"build failed"}`,
			`{"errorDetail":{"message":"build failed"},"error":"build failed"}`, true, "build failed"},
		{"error only", `{"error":"no space left\n"}`, `{"error":"no space left\n"}`, true, "no space left"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse(tt.line)
			assert.Equal(t, tt.isJSON, f.Message != nil)
			assert.Equal(t, tt.want, f.Text())
			if tt.wantErr == "" {
				assert.NoError(t, f.Err())
			} else {
				require.Error(t, f.Err())
				assert.Equal(t, tt.wantErr, f.Err().Error())
			}
		})
	}
}

func collect(t *testing.T, r io.Reader) ([]string, error) {
	t.Helper()
	var out []string
	for f, err := range Fragments(r) {
		if err != nil {
			return out, err
		}
		out = append(out, f.Text())
	}
	return out, nil
}

func TestFragmentsSkipsBlankLines(t *testing.T) {
	body := "{\"stream\":\"step 1\\n\"}\n\n   \n{\"stream\":\"step 2\\n\"}\nplain\r\n"
	got, err := collect(t, strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"step 1", "step 2", "plain"}, got)
}

func TestFragmentsWithoutTrailingNewline(t *testing.T) {
	got, err := collect(t, strings.NewReader("first\nlast"))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "last"}, got)
}

type failingReader struct {
	data string
	err  error
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.data == "" {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestFragmentsYieldsReadError(t *testing.T) {
	boom := errors.New("connection reset")
	got, err := collect(t, &failingReader{data: "one\ntwo\n", err: boom})
	assert.Equal(t, []string{"one", "two"}, got)
	assert.ErrorIs(t, err, boom)
}

func TestFragmentsStopsWhenConsumerBreaks(t *testing.T) {
	var seen int
	for range Fragments(strings.NewReader("a\nb\nc\n")) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
