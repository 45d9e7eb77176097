// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/summarit/core"
)

type mockRunner struct {
	output []byte
	err    error
	calls  []mockCall
}

type mockCall struct {
	name string
	args []string
	data []byte
}

func (r *mockRunner) Run(_ context.Context, data []byte, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, mockCall{name: name, args: args, data: data})
	if r.err != nil {
		return nil, r.err
	}
	return r.output, nil
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract(context.Background(), []byte("hello world\nsecond line"), core.FormatTXT)
	require.NoError(t, err)
	assert.Equal(t, "hello world\nsecond line", text)
}

func TestExtractPlainTextInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0x80}, core.FormatTXT)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractUnknownFormat(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("data"), core.FormatNone)
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
}

func TestExtractEmptyResultFails(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("   \n\t  "), core.FormatTXT)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractDocx(t *testing.T) {
	document := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second </w:t></w:r><w:r><w:t>paragraph.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	e := NewExtractor()
	text, err := e.Extract(context.Background(), buildDocx(t, document), core.FormatDOCX)
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtractDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	e := NewExtractor()
	_, err = e.Extract(context.Background(), buf.Bytes(), core.FormatDOCX)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractDocxNotAZip(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("not a zip archive"), core.FormatDOCX)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractDocViaRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("converted legacy text")}
	e := NewExtractor(WithRunner(runner))

	text, err := e.Extract(context.Background(), []byte{0xd0, 0xcf, 0x11, 0xe0}, core.FormatDOC)
	require.NoError(t, err)
	assert.Equal(t, "converted legacy text", text)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "antiword", runner.calls[0].name)
	assert.Equal(t, []byte{0xd0, 0xcf, 0x11, 0xe0}, runner.calls[0].data)
}

func TestExtractXlsViaRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("a,b,c\n1,2,3\n")}
	e := NewExtractor(WithRunner(runner))

	text, err := e.Extract(context.Background(), []byte{0xd0, 0xcf, 0x11, 0xe0}, core.FormatXLS)
	require.NoError(t, err)
	assert.Equal(t, "a,b,c\n1,2,3\n", text)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "xls2csv", runner.calls[0].name)
}

func TestExtractRunnerFailure(t *testing.T) {
	runner := &mockRunner{err: errors.New("exec: antiword: not found")}
	e := NewExtractor(WithRunner(runner))

	_, err := e.Extract(context.Background(), []byte{0x01}, core.FormatDOC)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestExtractPdfInvalid(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(context.Background(), []byte("not a pdf"), core.FormatPDF)
	assert.ErrorIs(t, err, ErrExtractionFailed)
}

func TestWithStrategyOverride(t *testing.T) {
	e := NewExtractor(WithStrategy(core.FormatPDF, &plainTextStrategy{}))

	text, err := e.Extract(context.Background(), []byte("plain text posing as pdf"), core.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "plain text posing as pdf", text)
}
