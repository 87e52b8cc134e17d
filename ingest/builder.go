package ingest

import (
	kalman_filter "github.com/LdDl/kalman-filter"
	"github.com/pkg/errors"

	"github.com/LdDl/mot-ilp/track"
)

// Attributes the builder writes onto graph nodes and edges. The cost
// modules read them by these names.
const (
	ScoreAttribute              = "score"
	XAttribute                  = "x"
	YAttribute                  = "y"
	PredictionDistanceAttribute = "prediction_distance"
	IoUAttribute                = "iou"
)

/* Kalman filter props */
const (
	kalmanUx       = 1.0
	kalmanUy       = 1.0
	kalmanStdDevA  = 2.0
	kalmanStdDevMx = 0.1
	kalmanStdDevMy = 0.1
)

// Builder turns detections into a candidate graph. Candidate links are
// gated by the distance between a detection's predicted next position
// and the candidate's center, widened per skipped frame.
type Builder struct {
	maxDistance float64
	maxFrameGap int
	dt          float64
}

// NewBuilder creates a builder gating candidate links at maxDistance
// per frame of gap, linking across up to maxFrameGap frames, with dt as
// the prediction time step.
func NewBuilder(maxDistance float64, maxFrameGap int, dt float64) *Builder {
	return &Builder{
		maxDistance: maxDistance,
		maxFrameGap: maxFrameGap,
		dt:          dt,
	}
}

// NewDefaultBuilder creates a builder linking consecutive frames only.
func NewDefaultBuilder() *Builder {
	return NewBuilder(30.0, 1, 1.0)
}

// Graph builds the candidate graph: one node per detection carrying its
// frame, center position and score, and one edge per gated pair of
// detections in nearby frames carrying the prediction distance and the
// bounding box overlap. The returned index maps graph nodes back to the
// detections they were created from.
func (b *Builder) Graph(detections []Detection) (*track.Graph, map[track.NodeID]Detection, error) {
	g := track.NewGraph()
	index := make(map[track.NodeID]Detection, len(detections))
	byFrame := make(map[int][]track.NodeID)
	for i, d := range detections {
		id := track.NodeID(i)
		center := d.Center()
		attrs := track.Attributes{
			track.DefaultFrameAttribute: float64(d.Frame),
			XAttribute:                  center.X,
			YAttribute:                  center.Y,
			ScoreAttribute:              d.Score,
		}
		if err := g.AddNode(id, attrs); err != nil {
			return nil, nil, errors.Wrapf(err, "Can't add %s", d)
		}
		index[id] = d
		byFrame[d.Frame] = append(byFrame[d.Frame], id)
	}
	for i, d := range detections {
		from := track.NodeID(i)
		predicted := b.predictNext(d.Center())
		for gap := 1; gap <= b.maxFrameGap; gap++ {
			for _, to := range byFrame[d.Frame+gap] {
				target := index[to]
				dist := euclideanDistance(predicted, target.Center())
				if dist > b.maxDistance*float64(gap) {
					continue
				}
				attrs := track.Attributes{
					PredictionDistanceAttribute: dist,
					IoUAttribute:                IoU(d.BBox, target.BBox),
				}
				if err := g.AddEdge(from, to, attrs); err != nil {
					return nil, nil, errors.Wrapf(err, "Can't link %s to %s", d, target)
				}
			}
		}
	}
	return g, index, nil
}

// predictNext runs one prediction step of a freshly seeded filter,
// estimating where a detection at the given center would move to by the
// next frame.
func (b *Builder) predictNext(center Point) Point {
	kf := kalman_filter.NewKalman2D(b.dt, kalmanUx, kalmanUy, kalmanStdDevA, kalmanStdDevMx, kalmanStdDevMy,
		kalman_filter.WithState2D(center.X, center.Y))
	kf.Predict()
	stateX, stateY := kf.GetState()
	return Point{X: stateX, Y: stateY}
}
