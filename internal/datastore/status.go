package datastore

import (
	"fmt"
	"io"

	"github.com/huangsam/reportboard/schema"
)

// PrintStoreStatus prints record store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Rows: %d\n", status.TotalRows)
	if status.TotalRows > 0 {
		_, _ = fmt.Fprintf(w, "Newest Request: %s\n", status.NewestDate)
		_, _ = fmt.Fprintf(w, "Oldest Request: %s\n", status.OldestDate)
	}
	_, _ = fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
}
