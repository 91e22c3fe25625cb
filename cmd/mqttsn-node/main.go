package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-io/mqttsn"
	"golang.org/x/sync/errgroup"
)

// loopbackLink is a trivial in-process Link: everything the client sends
// is discarded, and PollIncoming only returns frames placed on inbox,
// which nothing in this demo writes to, so no gateway ever answers. It
// stands in for the ZigBee/serial transport spec.md §1 puts out of
// scope, so this demo can run without real radio hardware.
type loopbackLink struct {
	gwID  uint8
	inbox chan mqttsn.Frame
}

func newLoopbackLink(gwID uint8) *loopbackLink {
	return &loopbackLink{gwID: gwID, inbox: make(chan mqttsn.Frame, 16)}
}

func (l *loopbackLink) SendUnicast(addr mqttsn.Addr, buf []byte) error {
	return nil
}

func (l *loopbackLink) SendBroadcast(buf []byte, radius uint8) error {
	return nil
}

func (l *loopbackLink) PollIncoming(deadline time.Duration) (mqttsn.Frame, error) {
	select {
	case f := <-l.inbox:
		return f, nil
	case <-time.After(deadline):
		return mqttsn.Frame{}, nil
	}
}

func main() {
	var (
		clientID  = flag.String("client-id", "node-1", "MQTT-SN client id")
		topicName = flag.String("topic", "demo/temperature", "topic to subscribe to")
		addr      = flag.String("debug-addr", "", "optional debug websocket address, e.g. :9090")
	)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())

	link := newLoopbackLink(1)
	c := mqttsn.New(
		mqttsn.ClientID(*clientID),
		mqttsn.WithLink(link),
		mqttsn.KeepAlive(60*time.Second),
		mqttsn.SetQoS(0),
	)

	c.CreateTopic(*topicName, func(data []byte) int32 {
		log.Printf("recv: topic=%s, data=%s", *topicName, data)
		return 0
	})
	if err := c.SubscribeName(*topicName, func(data []byte) int32 {
		log.Printf("sub: topic=%s, data=%s", *topicName, data)
		return 0
	}); err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	group, ctx := errgroup.WithContext(ctx)

	if *addr != "" {
		group.Go(func() error {
			mon := mqttsn.NewMonitor(c)
			go mon.Run(ctx, time.Second)
			return mon.Httpd(*addr)
		})
	}

	group.Go(func() error {
		tick := time.NewTicker(5 * time.Second)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick.C:
				payload := []byte(time.Now().Format(time.RFC3339))
				if err := c.PublishID(1, payload); err != nil {
					log.Printf("publish: %v", err)
				}
			}
		}
	})

	group.Go(func() error {
		defer cancel()
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case s := <-sig:
			return fmt.Errorf("got signal: %s", s)
		}
	})

	group.Go(func() error {
		return c.RunLoop()
	})

	if err := group.Wait(); err != nil {
		log.Printf("exit: %v", err)
	}
}
