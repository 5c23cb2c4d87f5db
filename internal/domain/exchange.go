package domain

import (
	"errors"
	"strings"
)

var ErrInvalidExchange = errors.New("invalid exchange")

// Exchange is the platform exchange code. Its string value doubles as the
// exchange prefix of provider symbols.
type Exchange string

const (
	ExchangeCFFEX Exchange = "CFFEX"
	ExchangeSHFE  Exchange = "SHFE"
	ExchangeCZCE  Exchange = "CZCE"
	ExchangeDCE   Exchange = "DCE"
	ExchangeINE   Exchange = "INE"
	ExchangeGFEX  Exchange = "GFEX"
	ExchangeSSE   Exchange = "SSE"
	ExchangeSZSE  Exchange = "SZSE"
	ExchangeLocal Exchange = "LOCAL"
)

var exchanges = []Exchange{
	ExchangeCFFEX,
	ExchangeSHFE,
	ExchangeCZCE,
	ExchangeDCE,
	ExchangeINE,
	ExchangeGFEX,
	ExchangeSSE,
	ExchangeSZSE,
	ExchangeLocal,
}

func (e Exchange) String() string {
	return string(e)
}

func ParseExchange(s string) (Exchange, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	for _, e := range exchanges {
		if string(e) == code {
			return e, nil
		}
	}
	return "", ErrInvalidExchange
}
