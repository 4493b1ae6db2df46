// Command countdown-timer runs the countdown appliance: a 1 Hz tick
// counts the display down, the button reloads it, the analog dial sets
// the target, and an indicator LED runs the expiry finale.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/countdown-timer/internal/analog"
	"github.com/sweeney/countdown-timer/internal/button"
	"github.com/sweeney/countdown-timer/internal/countdown"
	"github.com/sweeney/countdown-timer/internal/display"
	"github.com/sweeney/countdown-timer/internal/indicator"
	"github.com/sweeney/countdown-timer/internal/mqtt"
	"github.com/sweeney/countdown-timer/internal/status"
	"github.com/sweeney/countdown-timer/internal/web"
)

func main() {
	tick := flag.Duration("tick", time.Second, "Countdown tick interval")
	sample := flag.Duration("sample", 100*time.Millisecond, "Dial sampling interval")
	render := flag.Duration("render", 200*time.Millisecond, "Display refresh interval")
	target := flag.Uint("target", 180, "Initial countdown target in seconds")
	chip := flag.String("chip", button.DefaultChip, "GPIO chip device")
	pinButton := flag.Int("pin-button", button.DefaultPin, "BCM pin number for the reset button")
	pinLED := flag.Int("pin-led", indicator.DefaultPin, "BCM pin number for the indicator LED")
	i2cBus := flag.String("i2c", display.DefaultBus, "I2C bus for the display")
	adcPath := flag.String("adc", analog.DefaultDevicePath, "IIO raw attribute for the duration dial")
	adcBits := flag.Uint("adc-bits", analog.DefaultBits, "ADC resolution in bits")
	broker := flag.String("broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	printState := flag.Bool("print-state", false, "Print the dial reading and exit")
	httpAddr := flag.String("http", ":80", "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", "=broker", `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)

	flag.Parse()

	ws := resolveWSBroker(*wsBroker, *broker)
	cfg := runConfig{
		tick:      *tick,
		sample:    *sample,
		render:    *render,
		target:    uint32(*target),
		chip:      *chip,
		pinButton: *pinButton,
		pinLED:    *pinLED,
		i2cBus:    *i2cBus,
		adcPath:   *adcPath,
		adcBits:   *adcBits,
		broker:    *broker,
		heartbeat: *heartbeat,
		httpAddr:  *httpAddr,
		wsBroker:  ws,
	}
	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

type runConfig struct {
	tick      time.Duration
	sample    time.Duration
	render    time.Duration
	target    uint32
	chip      string
	pinButton int
	pinLED    int
	i2cBus    string
	adcPath   string
	adcBits   uint
	broker    string
	heartbeat time.Duration
	httpAddr  string
	wsBroker  string
}

func run(cfg runConfig, printState bool) error {
	// Phase one: bring up every collaborator before any source starts.
	// A failure anywhere here is a configuration error and the process
	// must not enter the loop.
	adc, err := analog.NewRealConverter(cfg.adcPath, cfg.adcBits)
	if err != nil {
		return fmt.Errorf("init adc: %w", err)
	}
	defer adc.Close()

	// Print state mode
	if printState {
		raw, err := adc.Convert()
		if err != nil {
			return fmt.Errorf("read adc: %w", err)
		}
		target := countdown.Quantize(countdown.ReduceSample(raw, adc.Bits()))
		fmt.Printf("dial: raw=%d target=%s\n", raw, status.Clock(target))
		return nil
	}

	disp, err := display.NewRealWriter(cfg.i2cBus)
	if err != nil {
		return fmt.Errorf("init display: %w", err)
	}
	defer disp.Close()

	led, err := indicator.NewRealIndicator(cfg.chip, cfg.pinLED)
	if err != nil {
		return fmt.Errorf("init indicator: %w", err)
	}
	defer led.Close()

	btn, err := button.NewRealWatcher(cfg.chip, cfg.pinButton)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer btn.Close()

	publisher, err := mqtt.NewRealPublisher(cfg.broker)
	if err != nil {
		return fmt.Errorf("init mqtt: %w", err)
	}
	defer publisher.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      cfg.tick.Milliseconds(),
		SampleMs:    cfg.sample.Milliseconds(),
		RenderMs:    cfg.render.Milliseconds(),
		HeartbeatMs: cfg.heartbeat.Milliseconds(),
		Broker:      cfg.broker,
		HTTPPort:    cfg.httpAddr,
		WSBroker:    cfg.wsBroker,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	cont := countdown.NewContainer(cfg.target)
	tracker.Update(cont.Snapshot(), cont.Counts())

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.httpAddr)
	}

	log.Printf("started: tick=%v sample=%v render=%v target=%ds broker=%s",
		cfg.tick, cfg.sample, cfg.render, cfg.target, cfg.broker)

	// Phase two: every handle is live, the sources may start.
	tickT := time.NewTicker(cfg.tick)
	defer tickT.Stop()
	sampleT := time.NewTicker(cfg.sample)
	defer sampleT.Stop()
	renderT := time.NewTicker(cfg.render)
	defer renderT.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		cont:    cont,
		disp:    disp,
		ind:     led,
		adc:     adc,
		pub:     publisher,
		mqttSt:  publisher,
		tracker: tracker,
		seq:     countdown.NewSequencer(time.Sleep),
		now:     time.Now,
	}
	chans := loopChans{
		tick:    tickT.C,
		sample:  sampleT.C,
		render:  renderT.C,
		presses: btn.Events(),
		sig:     sigCh,
	}
	return runLoop(deps, chans, cfg.heartbeat)
}

// loopDeps holds the fully-initialized collaborators the loop drives.
type loopDeps struct {
	cont    *countdown.Container
	disp    display.Writer
	ind     indicator.Indicator
	adc     analog.Converter
	pub     mqtt.Publisher
	mqttSt  mqtt.ConnectionStatus
	tracker *status.Tracker
	seq     *countdown.Sequencer
	now     func() time.Time
}

// loopChans carries the event sources into the loop.
type loopChans struct {
	tick    <-chan time.Time
	sample  <-chan time.Time
	render  <-chan time.Time
	presses <-chan time.Time
	sig     <-chan os.Signal
}

func (d loopDeps) valid() error {
	// Two-phase startup hands the loop live handles only; a nil here is
	// a startup-ordering bug, not something to limp along with.
	if d.cont == nil || d.disp == nil || d.ind == nil || d.adc == nil ||
		d.pub == nil || d.tracker == nil || d.seq == nil || d.now == nil {
		return errors.New("loop started with uninitialized collaborator")
	}
	return nil
}

func runLoop(d loopDeps, ch loopChans, heartbeat time.Duration) error {
	if err := d.valid(); err != nil {
		return err
	}

	d.seq.OnPhase = func(p countdown.Phase) { d.tracker.SetPhase(p) }
	lastHeartbeat := d.now()

	for {
		// A press waiting alongside pending ticks or samples is applied
		// first: the button must never lose to the periodic sources.
		select {
		case <-ch.presses:
			applyReset(d)
			continue
		default:
		}

		select {
		case s := <-ch.sig:
			return shutdown(d, s)

		case <-ch.presses:
			applyReset(d)

		case <-ch.tick:
			state, _ := d.cont.Apply(countdown.Event{Kind: countdown.EventTick})
			d.tracker.Update(state, d.cont.Counts())

		case <-ch.sample:
			sampleOnce(d)

		case <-ch.render:
			state := d.cont.Snapshot()
			if state.Elapsed == 0 {
				finale(d, ch)
				lastHeartbeat = checkHeartbeat(d, heartbeat, lastHeartbeat)
				continue
			}
			if err := d.disp.WriteFrame(countdown.Render(state)); err != nil {
				// Transient bus error: skip this frame, the next render
				// retries with fresh state.
				log.Printf("display write error: %v", err)
			}
			d.tracker.Update(state, d.cont.Counts())
			lastHeartbeat = checkHeartbeat(d, heartbeat, lastHeartbeat)
		}
	}
}

// applyReset reloads the countdown from the current target.
func applyReset(d loopDeps) {
	state, _ := d.cont.Apply(countdown.Event{Kind: countdown.EventReset})
	d.tracker.Update(state, d.cont.Counts())
	log.Printf("reset: elapsed reloaded to %s", status.Clock(state.Elapsed))
	publishEvent(d, mqtt.EventReset, state)
}

// sampleOnce performs one dial conversion and applies it.
func sampleOnce(d loopDeps) {
	raw, err := d.adc.Convert()
	if err != nil {
		// Transient conversion failure: the target keeps its last value
		// and the next sampling period retries.
		log.Printf("adc read error: %v", err)
		return
	}
	ev := countdown.Event{
		Kind: countdown.EventSampleUpdated,
		Raw:  countdown.ReduceSample(raw, d.adc.Bits()),
	}
	state, changed := d.cont.Apply(ev)
	d.tracker.Update(state, d.cont.Counts())
	if changed {
		log.Printf("target changed: %s", status.Clock(state.Target))
		publishEvent(d, mqtt.EventTargetChanged, state)
	}
}

// finale runs the expiry sequence: final frame, blink, hold, reload.
// Hardware events keep firing underneath it; they are drained between
// steps and the reload picks up whatever target they left behind.
func finale(d loopDeps, ch loopChans) {
	state := d.cont.Snapshot()
	if err := d.disp.WriteFrame(countdown.Render(state)); err != nil {
		log.Printf("display write error: %v", err)
	}
	d.tracker.Update(state, d.cont.Counts())
	log.Printf("expired: target=%s", status.Clock(state.Target))
	publishEvent(d, mqtt.EventExpired, state)

	drain := func() {
		for {
			select {
			case <-ch.tick:
				d.cont.Apply(countdown.Event{Kind: countdown.EventTick})
			case <-ch.presses:
				d.cont.Apply(countdown.Event{Kind: countdown.EventReset})
			case <-ch.sample:
				sampleOnce(d)
			default:
				return
			}
		}
	}
	if err := d.seq.Run(d.ind, drain); err != nil {
		log.Printf("indicator error: %v", err)
	}

	state = d.cont.Reload()
	d.tracker.SetPhase(countdown.PhaseCounting)
	d.tracker.Update(state, d.cont.Counts())
	log.Printf("reloaded: elapsed=%s", status.Clock(state.Elapsed))
	publishEvent(d, mqtt.EventReload, state)

	if err := d.disp.WriteFrame(countdown.Render(state)); err != nil {
		log.Printf("display write error: %v", err)
	}
}

func publishEvent(d loopDeps, kind string, state countdown.State) {
	err := d.pub.Publish(mqtt.TimerEvent{
		Timestamp: d.now(),
		Type:      kind,
		State:     state,
	})
	if err != nil {
		// Don't crash on publish failure
		log.Printf("publish error: %v", err)
	}
}

// checkHeartbeat publishes a periodic system event with a full status
// snapshot. Returns the new last-heartbeat time.
func checkHeartbeat(d loopDeps, interval time.Duration, last time.Time) time.Time {
	if interval <= 0 {
		return last
	}
	now := d.now()
	if now.Sub(last) < interval {
		return last
	}

	if d.mqttSt != nil {
		d.tracker.SetMQTTConnected(d.mqttSt.IsConnected())
	}
	// Refresh network info for heartbeat
	if net := readNetworkInfo(); net != nil {
		d.tracker.SetNetwork(net)
	}
	snap := d.tracker.Snapshot()
	log.Printf("heartbeat: uptime=%v ticks=%d resets=%d samples=%d cycles=%d",
		snap.Uptime().Truncate(time.Second), snap.Counts.Ticks, snap.Counts.Resets,
		snap.Counts.Samples, snap.Counts.Cycles)

	hbEvent := mqtt.SystemEvent{
		Timestamp:  now,
		Event:      "HEARTBEAT",
		RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
	}
	if err := d.pub.PublishSystem(hbEvent); err != nil {
		log.Printf("heartbeat publish error: %v", err)
	}
	return now
}

func shutdown(d loopDeps, s os.Signal) error {
	log.Printf("received %v, shutting down", s)
	signalName := "UNKNOWN"
	if s == syscall.SIGINT {
		signalName = "SIGINT"
	} else if s == syscall.SIGTERM {
		signalName = "SIGTERM"
	}

	if d.mqttSt != nil {
		d.tracker.SetMQTTConnected(d.mqttSt.IsConnected())
	}
	snap := d.tracker.Snapshot()
	event := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "SHUTDOWN",
		Reason:     signalName,
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "SHUTDOWN", signalName),
	}
	if err := d.pub.PublishSystem(event); err != nil {
		log.Printf("failed to publish shutdown event: %v", err)
	} else {
		log.Printf("published shutdown event")
	}

	// Leave the hardware dark.
	if err := d.ind.Set(false); err != nil {
		log.Printf("indicator clear error: %v", err)
	}
	if err := d.disp.Clear(); err != nil {
		log.Printf("display clear error: %v", err)
	}
	return nil
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; "off"
// disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
