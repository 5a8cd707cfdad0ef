package helper

import "time"

const DayKeyLayout = "2006-01-02"

// DayKey mengubah timestamp menjadi kunci tanggal (YYYY-MM-DD) pada zona waktu lokal.
// Dipakai sebagai kolom check_date sehingga unik per hari kalender.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// StartOfDay memotong timestamp ke pukul 00:00 lokal.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LastNDayKeys mengembalikan kunci tanggal untuk n hari terakhir, urut menaik
// dan berakhir pada hari `today`.
func LastNDayKeys(today time.Time, n int) []string {
	keys := make([]string, 0, n)
	start := StartOfDay(today)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DayKey(start.AddDate(0, 0, -i)))
	}
	return keys
}
