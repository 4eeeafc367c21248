package hamster

// BuildMotoringSnapshot is request_motoring_data (spec §4.5 step 4):
// read the user's effector/command writes into the per-robot motoring
// snapshot, honoring Written for the line-tracer mode's edge-triggered
// flag bit, then clear every written flag. Called once per tick by the
// runner, never concurrently with itself for a given robot.
func (r *Robot) BuildMotoringSnapshot() {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := &r.Devices
	s := &r.snapshot

	s.leftWheel = d[IdxLeftWheel].Read()
	s.rightWheel = d[IdxRightWheel].Read()
	s.buzzer = d[IdxBuzzer].ReadFloat()
	s.outputA = d[IdxOutputA].Read()
	s.outputB = d[IdxOutputB].Read()
	s.topology = d[IdxTopology].Read()
	s.leftLed = d[IdxLeftLed].Read()
	s.rightLed = d[IdxRightLed].Read()
	s.note = d[IdxNote].Read()
	s.ioModeA = d[IdxIoModeA].Read()
	s.ioModeB = d[IdxIoModeB].Read()
	s.proximity = d[IdxConfigProximity].Read()
	s.gravity = d[IdxConfigGravity].Read()
	s.bandWidth = d[IdxConfigBandWidth].Read()

	s.lineMode = d[IdxLineTracerMode].Read()
	s.lineSpeed = d[IdxLineTracerSpeed].Read()
	if d[IdxLineTracerMode].Written() && s.lineMode != 0 {
		s.lineFlag = !s.lineFlag
		if lineTracerCompletes(s.lineMode) {
			r.armLineTracerEventLocked()
		}
	}

	for _, idx := range writableIndices {
		d[idx].ClearWritten()
	}
}

// writableIndices are the 16 effector/command device slots swept by
// BuildMotoringSnapshot and update_motoring_device_state.
var writableIndices = [...]int{
	IdxLeftWheel, IdxRightWheel, IdxBuzzer, IdxOutputA, IdxOutputB,
	IdxTopology, IdxLeftLed, IdxRightLed, IdxNote, IdxLineTracerMode,
	IdxLineTracerSpeed, IdxIoModeA, IdxIoModeB, IdxConfigProximity,
	IdxConfigGravity, IdxConfigBandWidth,
}

// sensorIndices are the 11 sensor/event device slots swept by
// update_sensory_device_state.
var sensorIndices = [...]int{
	IdxSignalStrength, IdxLeftProximity, IdxRightProximity, IdxLeftFloor,
	IdxRightFloor, IdxAcceleration, IdxLight, IdxTemperature, IdxInputA,
	IdxInputB, IdxLineTracerState,
}

// CommitMotoringEvents runs update_motoring_device_state (spec §4.5
// step 5): commits the fired/event edge for every effector/command
// device.
func (r *Robot) CommitMotoringEvents() {
	for _, idx := range writableIndices {
		r.Devices[idx].CommitEvent()
	}
}

// CommitSensoryEvents runs update_sensory_device_state (spec §4.5 step
// 1): commits the fired/event edge for every sensor/event device.
func (r *Robot) CommitSensoryEvents() {
	for _, idx := range sensorIndices {
		r.Devices[idx].CommitEvent()
	}
}

// Snapshot returns the current motoring snapshot and the connector's
// discovered address, for the I/O goroutine to encode.
func (r *Robot) Snapshot() (motoringSnapshot, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	addr := ""
	if r.Connector != nil {
		addr = r.Connector.Address
	}
	return r.snapshot, addr
}

// ApplyRawSensoryPacket decodes a full-length inbound sensory packet and
// applies it, exactly as the per-robot I/O goroutine's pollOnce does
// (spec §4.4). Exposed for callers that need to drive a robot's sensor
// state without a live serial connection, e.g. a replay tool or a test.
func (r *Robot) ApplyRawSensoryPacket(packet []byte) {
	r.ApplySensoryReading(decodeSensoryPacket(packet))
}

// ApplySensoryReading writes a decoded inbound packet's fields into the
// sensor devices via Put (the protocol-internal, role-unchecked path),
// latching light/temperature across ticks where the wire multiplexes
// them, and advances the line-tracer completion watch.
func (r *Robot) ApplySensoryReading(reading sensoryReading) {
	r.Devices[IdxSignalStrength].Put(reading.signalStrength)
	r.Devices[IdxLeftProximity].Put(reading.leftProximity)
	r.Devices[IdxRightProximity].Put(reading.rightProximity)
	r.Devices[IdxLeftFloor].Put(reading.leftFloor)
	r.Devices[IdxRightFloor].Put(reading.rightFloor)
	r.Devices[IdxAcceleration].PutAt(0, reading.accelX)
	r.Devices[IdxAcceleration].PutAt(1, reading.accelY)
	r.Devices[IdxAcceleration].PutAt(2, reading.accelZ)
	if reading.hasLight {
		r.Devices[IdxLight].Put(reading.light)
	}
	if reading.hasTemperature {
		r.Devices[IdxTemperature].Put(reading.temperature)
	}
	r.Devices[IdxInputA].Put(reading.inputA)
	r.Devices[IdxInputB].Put(reading.inputB)

	r.runBoardStep(reading.leftFloor, reading.rightFloor)
	r.observeLineTracerByte(reading.lineTracerByte)

	if !r.Ready() {
		r.setReady()
	}
}

