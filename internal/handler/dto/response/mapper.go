package response

import (
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"
)

// copyInto deep-copies a read model into a response DTO by field name.
func copyInto[T any](src any) *T {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("failed to map response", "type", fmt.Sprintf("%T", dst), "error", err.Error())
	}
	return &dst
}
