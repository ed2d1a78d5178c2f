package registry

import "time"

type RequestLog struct {
	Operation  string
	Repository string
	Duration   time.Duration
	Code       string
	Err        error
}

type RequestLogger func(RequestLog)
