// Package httperr translates errors escaping HTTP handlers into a
// stable, client-safe JSON error shape. It defines the canonical
// Record taxonomy, the APIError type applications raise directly, and
// the ordered handler dispatch that classifies everything else. Host
// framework integration lives in the ginx and chix packages.
package httperr
