package wl

// #include <stdlib.h>
import "C"
import "unsafe"

// cFree releases a C string produced by C.CString. Protocol requests that
// take a string argument (layer_surface namespaces, data-source mime
// types, xdg-output names) all funnel through this instead of duplicating
// the cgo free dance at every call site.
func cFree(s *C.char) { C.free(unsafe.Pointer(s)) }
