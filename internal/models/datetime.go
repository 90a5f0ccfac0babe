package models

type DateTimeInfo struct {
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	DayName   string `json:"day_name"`
	Formatted string `json:"formatted"`
}
