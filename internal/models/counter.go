package models

// ReceiptCounter mirrors the receipt_counters table: one monotonically
// increasing sequence per (year, month) period, created lazily on first
// allocation and never decremented or reused.
type ReceiptCounter struct {
	Year     int   `json:"year"`
	Month    int   `json:"month"`
	Sequence int64 `json:"sequence"`
}
