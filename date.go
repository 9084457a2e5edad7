// Copyright 2016 - 2025 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xlsxbook

import (
	"math"
	"time"

	"github.com/xuri/nfp"
)

const secondsInDay = 86400

var (
	excel1900Epoch      = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	excel1900LeapBefore = time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	excel1904Epoch      = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
	// Serial 60 is the non-existent 1900-02-29; dates before 1900-03-01 sit
	// one day closer to the epoch.
	excel1900LeapDay = time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)
)

// timeToSerial converts the wall clock of t to a serial date number in the
// selected epoch. The time zone of t is ignored.
func timeToSerial(t time.Time, date1904 bool) float64 {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	epoch := excel1900Epoch
	switch {
	case date1904:
		epoch = excel1904Epoch
	case wall.Before(excel1900LeapDay):
		epoch = excel1900LeapBefore
	}
	secs := wall.Unix() - epoch.Unix()
	return float64(secs)/secondsInDay + float64(wall.Nanosecond())/(secondsInDay*1e9)
}

// serialToTime converts a serial date number in the selected epoch back to
// a UTC time, rounded to the millisecond.
func serialToTime(serial float64, date1904 bool) time.Time {
	epoch := excel1900Epoch
	switch {
	case date1904:
		epoch = excel1904Epoch
	case serial < 60:
		epoch = excel1900LeapBefore
	}
	days := math.Floor(serial)
	millis := math.Round((serial - days) * secondsInDay * 1000)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(millis) * time.Millisecond)
}

// isDateFormat reports whether any section of the number format carries a
// date or time token.
func isDateFormat(format string) bool {
	ps := nfp.NumberFormatParser()
	for _, section := range ps.Parse(format) {
		for _, token := range section.Items {
			if token.TType == nfp.TokenTypeDateTimes {
				return true
			}
		}
	}
	return false
}
