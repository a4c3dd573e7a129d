package nn

import (
	"github.com/pkg/errors"

	"go-micrograd/autograd"
)


func checkLengths(name string, preds []*autograd.Value, targets []float64) error {
	if len(preds) != len(targets) {
		return errors.Errorf("%s: %d predictions but %d targets", name, len(preds), len(targets))
	}
	if len(preds) == 0 {
		return errors.Errorf("%s: empty batch", name)
	}
	return nil
}



// SumSquaredError returns sum_i (pred_i - target_i)^2.
func SumSquaredError(preds []*autograd.Value, targets []float64) (*autograd.Value, error) {
	if err := checkLengths("sum_squared_error", preds, targets); err != nil {
		return nil, err
	}
	terms := make([]*autograd.Value, len(preds))
	for i, p := range preds {
		terms[i] = p.SubScalar(targets[i]).Pow(2)
	}
	return autograd.Sum(terms...), nil
}



// MeanSquaredError is SumSquaredError divided by the batch size.
func MeanSquaredError(preds []*autograd.Value, targets []float64) (*autograd.Value, error) {
	sse, err := SumSquaredError(preds, targets)
	if err != nil {
		return nil, errors.Wrap(err, "mean_squared_error")
	}
	return sse.DivScalar(float64(len(preds))), nil
}



// HingeLoss is the max-margin loss mean_i relu(1 - y_i*score_i) for labels in {-1, +1}.
func HingeLoss(scores []*autograd.Value, labels []float64) (*autograd.Value, error) {
	if err := checkLengths("hinge_loss", scores, labels); err != nil {
		return nil, err
	}
	terms := make([]*autograd.Value, len(scores))
	for i, s := range scores {
		terms[i] = autograd.Sub(1.0, s.MulScalar(labels[i])).ReLU()
	}
	return autograd.Sum(terms...).DivScalar(float64(len(scores))), nil
}
