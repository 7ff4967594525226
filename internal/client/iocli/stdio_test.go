package iocli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioWith(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s", 1, "abc")
	_, err := stdio.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc!", out.String())
}

func TestReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewStdioWith(strings.NewReader("  user input \nsecond\nlast"), &out)

	result, err := stdio.ReadInput("Prompt: ")
	require.NoError(t, err)
	assert.Equal(t, "user input", result)

	// буфер не теряется между вызовами
	result, err = stdio.ReadInput("Next: ")
	require.NoError(t, err)
	assert.Equal(t, "second", result)

	result, err = stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "last", result)

	_, err = stdio.ReadInput("EOF: ")
	assert.ErrorIs(t, err, io.EOF)

	assert.Equal(t, "Prompt: Next: Password: EOF: ", out.String())
}
