package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID returns a KSUID used to correlate a client request with
// backend logs through the X-Request-ID header.
func NewRequestID() string {
	return ksuid.New().String()
}

// NewSnowflakeID returns the next id from the process-wide snowflake node.
// The node id comes from SNOWFLAKE_NODE and defaults to 1. Zero is returned
// only when the node cannot be created.
func NewSnowflakeID() int64 {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = n
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// out-of-range node ids fall back to node 1
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	if node == nil {
		return 0
	}
	return node.Generate().Int64()
}
