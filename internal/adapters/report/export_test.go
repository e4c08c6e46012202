package report

import "time"

func (w *Writer) SetClock(now func() time.Time) { w.now = now }
