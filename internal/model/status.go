package model

type Status string

const (
	StatusFilling Status = "filling"
	StatusSending Status = "sending"
)
