// Package clipboard owns a wl_data_source's lifecycle: it offers
// image/png, streams a Link Buffer's bytes to whoever asks, and frees the
// buffer once the compositor tells it the selection has been superseded
// (spec.md §4.9).
package clipboard

import (
	"os"

	"github.com/Mabi19/spaceshot/internal/linkbuf"
	"github.com/Mabi19/spaceshot/internal/wl"
)

const mimeTypePNG = "image/png"

// Owner holds one clipboard offer alive until the compositor cancels it.
type Owner struct {
	source *wl.DataSource
	buf    *linkbuf.Buffer

	// OnReleased fires once the source is cancelled and the buffer can be
	// reused or freed by the caller.
	OnReleased func()
}

// Offer creates a data source advertising buf as image/png and claims the
// seat's selection with it.
func Offer(mgr *wl.DataDeviceManager, device *wl.DataDevice, serial uint32, buf *linkbuf.Buffer) *Owner {
	o := &Owner{buf: buf}
	o.source = mgr.CreateDataSource()
	o.source.Offer(mimeTypePNG)
	o.source.OnSend = o.onSend
	o.source.OnCancelled = o.onCancelled
	device.SetSelection(o.source, serial)
	return o
}

func (o *Owner) onSend(mimeType string, fd int32) {
	f := os.NewFile(uintptr(fd), "clipboard-send")
	defer f.Close()
	if mimeType != mimeTypePNG {
		return
	}
	o.buf.WriteTo(f)
}

func (o *Owner) onCancelled() {
	o.source.Destroy()
	if o.OnReleased != nil {
		o.OnReleased()
	}
}
