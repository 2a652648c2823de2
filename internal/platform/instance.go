package platform

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"strings"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

const (
	activateCommand = "show"
	activateTimeout = 2 * time.Second
)

// InstanceLock holds the single-instance port and answers activation
// requests from later launches.
type InstanceLock struct {
	listener net.Listener
	address  string
	done     chan struct{}
}

// AcquireInstance binds a localhost port derived from appName.
func AcquireInstance(appName string) (*InstanceLock, error) {
	return acquireAt(instanceAddress(appName))
}

// ActivateRunning asks the instance holding appName's lock to show itself.
func ActivateRunning(appName string) error {
	return activateAt(instanceAddress(appName))
}

func acquireAt(address string) (*InstanceLock, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock %s: %w", address, ErrAlreadyRunning)
	}
	return &InstanceLock{listener: listener, address: listener.Addr().String()}, nil
}

func activateAt(address string) error {
	conn, err := net.DialTimeout("tcp", address, activateTimeout)
	if err != nil {
		return fmt.Errorf("dial running instance: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()
	_ = conn.SetDeadline(time.Now().Add(activateTimeout))
	if _, err := fmt.Fprintln(conn, activateCommand); err != nil {
		return fmt.Errorf("send activation: %w", err)
	}
	return nil
}

// Serve calls onActivate for every activation request until Release.
// It returns immediately; a second call is ignored.
func (lock *InstanceLock) Serve(onActivate func()) {
	if lock == nil || lock.done != nil {
		return
	}
	lock.done = make(chan struct{})
	go func() {
		defer close(lock.done)
		for {
			conn, err := lock.listener.Accept()
			if err != nil {
				return
			}
			if readCommand(conn) == activateCommand && onActivate != nil {
				onActivate()
			}
		}
	}()
}

func readCommand(conn net.Conn) string {
	defer func() {
		_ = conn.Close()
	}()
	_ = conn.SetReadDeadline(time.Now().Add(activateTimeout))
	line, _ := bufio.NewReader(conn).ReadString('\n')
	return strings.TrimSpace(line)
}

// Release frees the lock and stops serving.
func (lock *InstanceLock) Release() error {
	if lock == nil || lock.listener == nil {
		return nil
	}
	err := lock.listener.Close()
	if lock.done != nil {
		<-lock.done
	}
	return err
}

// Address returns the bound address.
func (lock *InstanceLock) Address() string {
	if lock == nil {
		return ""
	}
	return lock.address
}

func instanceAddress(appName string) string {
	return fmt.Sprintf("127.0.0.1:%d", portFromName(appName))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
