package pose

// Canonical joint names shared by the pose detector output and the processor.
const (
	Nose           = "nose"
	LeftEye        = "left_eye"
	RightEye       = "right_eye"
	LeftEar        = "left_ear"
	RightEar       = "right_ear"
	LeftShoulder   = "left_shoulder"
	RightShoulder  = "right_shoulder"
	LeftElbow      = "left_elbow"
	RightElbow     = "right_elbow"
	LeftWrist      = "left_wrist"
	RightWrist     = "right_wrist"
	LeftHip        = "left_hip"
	RightHip       = "right_hip"
	LeftKnee       = "left_knee"
	RightKnee      = "right_knee"
	LeftAnkle      = "left_ankle"
	RightAnkle     = "right_ankle"
	LeftHeel       = "left_heel"
	RightHeel      = "right_heel"
	LeftFootIndex  = "left_foot_index"
	RightFootIndex = "right_foot_index"
)

// Landmark is one detected joint position in normalized frame coordinates.
// X and Y are in [0,1] relative to the frame; Y grows downwards.
type Landmark struct {
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Z          *float64 `json:"z,omitempty"`
	Visibility *float64 `json:"visibility,omitempty"`
}

// Confidence returns the detector visibility, treating a missing value as fully visible.
func (l Landmark) Confidence() float64 {
	if l.Visibility == nil {
		return 1
	}
	return *l.Visibility
}

// Frame is one captured image worth of landmarks.
type Frame struct {
	FrameNumber int                 `json:"frame_number"`
	TimestampMs float64             `json:"timestamp_ms"`
	Landmarks   map[string]Landmark `json:"landmarks"`
}

// MetricValue is a named measurement produced from one frame or a reduced sequence.
type MetricValue struct {
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit,omitempty"`
}

// FrameMetrics holds the metrics extracted from a single frame.
type FrameMetrics struct {
	FrameNumber int           `json:"frame_number"`
	TimestampMs float64       `json:"timestamp_ms"`
	Metrics     []MetricValue `json:"metrics"`
}

// Lookup returns the named metric from the frame, if present.
func (fm FrameMetrics) Lookup(name string) (MetricValue, bool) {
	for _, m := range fm.Metrics {
		if m.Metric == name {
			return m, true
		}
	}
	return MetricValue{}, false
}

// Point builds a fully visible landmark. Mostly useful for synthetic frames.
func Point(x, y float64) Landmark {
	v := 1.0
	return Landmark{X: x, Y: y, Visibility: &v}
}

// PointWithVisibility builds a landmark with an explicit visibility score.
func PointWithVisibility(x, y, visibility float64) Landmark {
	return Landmark{X: x, Y: y, Visibility: &visibility}
}
