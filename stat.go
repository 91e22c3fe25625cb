package mqttsn

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/golang-io/mqttsn/packet"
	"github.com/golang-io/requests"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stat holds the client's Prometheus instrumentation: per-message-type
// frame/byte counters, retry and decode-error counters, and gauges for
// the two pieces of state worth watching from outside (gateway lifecycle,
// queue depth). Grounded on the teacher's stat.go, generalized from its
// fixed broker-connection counters to the vector metrics a 20-message-type
// client needs.
type Stat struct {
	Uptime prometheus.Counter

	FramesSent     *prometheus.CounterVec
	FramesReceived *prometheus.CounterVec
	BytesSent      prometheus.Counter
	BytesReceived  prometheus.Counter

	Retries      prometheus.Counter
	DecodeErrors prometheus.Counter

	GatewayState prometheus.Gauge
	QueueDepth   prometheus.Gauge
}

func newStat() *Stat {
	return &Stat{
		Uptime: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttsn_uptime_seconds", Help: "Seconds since the client was created.",
		}),
		FramesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttsn_frames_sent_total", Help: "Frames sent, by message type.",
		}, []string{"kind"}),
		FramesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mqttsn_frames_received_total", Help: "Frames received, by message type.",
		}, []string{"kind"}),
		BytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttsn_bytes_sent_total", Help: "Total bytes sent.",
		}),
		BytesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttsn_bytes_received_total", Help: "Total bytes received.",
		}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttsn_retries_total", Help: "Retransmissions of the head send-queue entry.",
		}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mqttsn_decode_errors_total", Help: "Inbound frames that failed to decode.",
		}),
		GatewayState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mqttsn_gateway_state", Help: "Current GatewayState (Init=0..Lost=5).",
		}),
		QueueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mqttsn_queue_depth", Help: "Current send-queue length.",
		}),
	}
}

// Register registers every collector with the default Prometheus registry.
// Safe to call once per process.
func (s *Stat) Register() {
	prometheus.MustRegister(
		s.Uptime, s.FramesSent, s.FramesReceived, s.BytesSent, s.BytesReceived,
		s.Retries, s.DecodeErrors, s.GatewayState, s.QueueDepth,
	)
}

func (s *Stat) recordSent(kind byte, n int) {
	s.FramesSent.WithLabelValues(packet.Kind[kind]).Inc()
	s.BytesSent.Add(float64(n))
}

func (s *Stat) recordReceived(kind byte, n int) {
	s.FramesReceived.WithLabelValues(packet.Kind[kind]).Inc()
	s.BytesReceived.Add(float64(n))
}

func (s *Stat) recordRetry() { s.Retries.Inc() }

func (s *Stat) recordDecodeError() { s.DecodeErrors.Inc() }

func (s *Stat) setGatewayState(gs GatewayState) { s.GatewayState.Set(float64(gs)) }

func (s *Stat) setQueueDepth(n int) { s.QueueDepth.Set(float64(n)) }

// refreshUptime starts a goroutine that ticks Uptime once a second. It is
// the one piece of this client that runs off the cooperative main loop,
// matching the teacher's stat.go which does the same for its broker uptime.
func (s *Stat) refreshUptime() {
	go func() {
		tick := time.NewTicker(time.Second)
		for range tick.C {
			s.Uptime.Inc()
		}
	}()
}

func statHTTPLog(_ context.Context, st *requests.Stat) {
	log.Printf("debug http: %s", st.Print())
}

// Httpd serves /metrics (and pprof) on addr for external observation of a
// running client — useful on a gateway-adjacent debug host even though
// the client itself runs on a constrained node. Grounded on the teacher's
// Httpd(), built on the same requests.NewServeMux/NewServer pair.
func (s *Stat) Httpd(addr string) error {
	s.Register()
	s.refreshUptime()
	mux := requests.NewServeMux(requests.URL(addr), requests.Logf(statHTTPLog))
	mux.Route("/metrics", promhttp.Handler())
	mux.Pprof()
	srv := requests.NewServer(context.Background(), mux, requests.OnStart(func(s *http.Server) {
		log.Printf("debug http serve: addr=%s", s.Addr)
	}))
	return srv.ListenAndServe()
}
