package card

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/monocap/monocap/drivers/imagefs"
)

func TestList(t *testing.T) {
	vol, err := imagefs.Create(filepath.Join(t.TempDir(), "card.img"), 64<<20)
	assert.NoError(t, err)
	defer vol.Close()

	assert.NoError(t, vol.WriteImage("IMG_000.RAW", []byte{1, 2, 3, 4}))
	assert.NoError(t, vol.WriteImage("IMG_001.RAW", []byte{5, 6, 7, 8}))

	var buf bytes.Buffer
	assert.NoError(t, List(&buf, vol))
	assert.True(t, strings.Contains(buf.String(), "IMG_000.RAW\n"))
	assert.True(t, strings.Contains(buf.String(), "IMG_001.RAW\n"))
}
