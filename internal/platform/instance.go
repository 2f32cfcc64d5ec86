package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"net"
	"os"
	"os/user"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another timer window already holds the lock.
var ErrAlreadyRunning = errors.New("pomodoro timer already running")

const (
	lockPortMin = 20000
	lockPortMax = 39999

	showRequest   = "show\n"
	activateAfter = time.Second
)

// InstanceLock keeps a second desktop timer from starting in the same
// user session. The holder can Serve show requests from later launches.
type InstanceLock struct {
	mu       sync.Mutex
	listener net.Listener
}

// AcquireInstanceLock binds a localhost port derived from appName and the
// current user. When another instance holds it, that instance is asked to
// show its window and ErrAlreadyRunning is returned.
func AcquireInstanceLock(appName string) (*InstanceLock, error) {
	address := lockAddress(lockKey(appName, currentUser()))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		if showErr := requestShow(address); showErr != nil {
			return nil, fmt.Errorf("%w: %s: show request: %v", ErrAlreadyRunning, address, showErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrAlreadyRunning, address)
	}
	return &InstanceLock{listener: listener}, nil
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	listener := lock.current()
	if listener == nil {
		return ""
	}
	return listener.Addr().String()
}

// Serve calls onShow for every show request until the lock is released.
func (lock *InstanceLock) Serve(onShow func()) {
	listener := lock.current()
	if listener == nil {
		return
	}
	for {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		go func() {
			defer conn.Close()
			if readShowRequest(conn) && onShow != nil {
				onShow()
			}
		}()
	}
}

// Release frees the lock and stops Serve.
func (lock *InstanceLock) Release() error {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	if lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	lock.listener = nil
	return err
}

func (lock *InstanceLock) current() net.Listener {
	if lock == nil {
		return nil
	}
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.listener
}

func requestShow(address string) error {
	conn, err := net.DialTimeout("tcp", address, activateAfter)
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetWriteDeadline(time.Now().Add(activateAfter))
	_, err = io.WriteString(conn, showRequest)
	return err
}

func readShowRequest(conn net.Conn) bool {
	_ = conn.SetReadDeadline(time.Now().Add(activateAfter))
	buf := make([]byte, len(showRequest))
	if _, err := io.ReadFull(conn, buf); err != nil {
		return false
	}
	return string(buf) == showRequest
}

func currentUser() string {
	if current, err := user.Current(); err == nil && current.Username != "" {
		return current.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return os.Getenv("USERNAME")
}

func lockKey(appName, userName string) string {
	return appName + "\x00" + userName
}

func lockAddress(key string) string {
	return fmt.Sprintf("127.0.0.1:%d", lockPort(key))
}

func lockPort(key string) int {
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(key))
	span := uint32(lockPortMax - lockPortMin + 1)
	return lockPortMin + int(hash.Sum32()%span)
}
