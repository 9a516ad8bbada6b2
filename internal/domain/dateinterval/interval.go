package dateinterval

import "time"

// DateFormat は日付パラメータの共通フォーマット
const DateFormat = "2006-01-02"

// Normalize は時刻を切り捨てて日付（UTC 0時）に正規化する
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps は半開区間 [aStart, aEnd) と [bStart, bEnd) が重なるかを返す
// チェックアウト日とチェックイン日が一致する連泊予約は重ならない扱いとなる
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DaysInRange は start から end までの暦日を両端含めて昇順で返す
// end が start より前の場合は空スライスを返す
func DaysInRange(start, end time.Time) []time.Time {
	start = Normalize(start)
	end = Normalize(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, Nights(start, end)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Nights はチェックインからチェックアウトまでの泊数（暦日差）を返す
func Nights(checkIn, checkOut time.Time) int {
	checkIn = Normalize(checkIn)
	checkOut = Normalize(checkOut)
	return int(checkOut.Sub(checkIn).Hours() / 24)
}
