package common

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var DefaultEndpoint int = 54321

// Endpoint is the url the query service listens on, like
// `http://localhost:54321`.
type Endpoint url.URL

func (e *Endpoint) String() string {
	return (&url.URL{
		Scheme: e.Scheme,
		Host:   e.Host,
		Path:   e.Path,
	}).String()
}

// BindAddr returns the `host:port` used for `net.Listen`.
func (e *Endpoint) BindAddr() string {
	return e.Host
}

func (e *Endpoint) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}

	p, err := ParseEndpoint(s)
	if err != nil {
		return err
	}

	*e = *p

	return nil
}

func (e *Endpoint) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(e.String())), nil
}

func ParseEndpoint(endpoint string) (u *Endpoint, err error) {
	var parsed *url.URL
	if parsed, err = url.Parse(endpoint); err != nil {
		return
	}

	switch parsed.Scheme {
	case "http", "https":
	case "":
		err = errors.New("missing scheme")
		return
	default:
		err = errors.Errorf("unsupported scheme, %q", parsed.Scheme)
		return
	}

	if len(parsed.Port()) < 1 {
		parsed.Host = fmt.Sprintf("%s:%d", parsed.Hostname(), DefaultEndpoint)
	}

	if err = CheckBindString(parsed.Host); err != nil {
		return
	}

	if len(parsed.Hostname()) < 1 {
		parsed.Host = fmt.Sprintf("localhost:%s", parsed.Port())
	}
	parsed.Host = strings.ToLower(parsed.Host)

	u = (*Endpoint)(parsed)

	return
}

func CheckBindString(b string) error {
	_, port, err := net.SplitHostPort(b)
	if err != nil {
		return errors.Wrap(err, "invalid bind")
	}

	var portInt int64
	if portInt, err = strconv.ParseInt(port, 10, 64); err != nil {
		return errors.Wrap(err, "invalid port")
	} else if portInt < 1 || portInt > 65535 {
		return errors.Errorf("invalid port, %d", portInt)
	}

	return nil
}
