package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewSessionID returns an opaque token grouping the call logs of one calling
// session: time-based for ordering across sessions, random suffix for
// uniqueness within the same millisecond. The token is never parsed.
func NewSessionID() string {
	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), suffix)
}
