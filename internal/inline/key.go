package inline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Key identifies one compiled template inside a worker cache.
type Key struct {
	File   string
	Line   int
	Format string
}

func (k Key) String() string { return fmt.Sprintf("%s:%d.%s", k.File, k.Line, k.Format) }

var pathSanitizer = strings.NewReplacer("~", "_", "/", "_", "\\", "_", ":", "_", " ", "_")

// maxScratchName keeps scratch file names under common filesystem limits.
const maxScratchName = 200

// scratchName is the deterministic scratch file name for k.  Rewrites for
// the same key land on the same file.
func (k Key) scratchName() string {
	name := fmt.Sprintf("%s_%d.%s", pathSanitizer.Replace(k.File), k.Line, k.Format)
	if len(name) <= maxScratchName {
		return name
	}
	sum := sha256.Sum256([]byte(k.File))
	return fmt.Sprintf("%s_%d.%s", hex.EncodeToString(sum[:]), k.Line, k.Format)
}
