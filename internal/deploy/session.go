package deploy

import (
	"errors"
	"io"
	"net/textproto"

	"github.com/jlaffaye/ftp"
)

// Target identifies the transfer server and credentials for one session.
type Target struct {
	Addr     string // host:port
	User     string
	Password string
}

// Session is one authenticated command channel to the transfer server.
// The protocol allows a single command in flight, so callers issue
// EnsureDir/Upload strictly in sequence and Close exactly once.
type Session interface {
	EnsureDir(path string) error
	Upload(path string, r io.Reader) error
	Close() error
}

// DialFunc opens a Session against a Target. Implemented by DialFTP;
// inject a fake in tests.
type DialFunc func(Target) (Session, error)

// DialFTP connects and logs in to an FTP server.
func DialFTP(t Target) (Session, error) {
	conn, err := ftp.Dial(t.Addr)
	if err != nil {
		return nil, err
	}
	if err := conn.Login(t.User, t.Password); err != nil {
		conn.Quit()
		return nil, err
	}
	return &ftpSession{conn: conn}, nil
}

type ftpSession struct {
	conn *ftp.ServerConn
}

func (s *ftpSession) EnsureDir(path string) error {
	err := s.conn.MakeDir(path)
	var proto *textproto.Error
	if errors.As(err, &proto) && proto.Code == ftp.StatusFileUnavailable {
		// 550: the directory already exists. If it genuinely could not be
		// created the following upload into it fails anyway.
		return nil
	}
	return err
}

func (s *ftpSession) Upload(path string, r io.Reader) error {
	return s.conn.Stor(path, r)
}

func (s *ftpSession) Close() error {
	return s.conn.Quit()
}
