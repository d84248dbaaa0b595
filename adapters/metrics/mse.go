package metrics

// MSE is the mean squared error between estimate and reference.
type MSE struct{}

func NewMSE() *MSE { return &MSE{} }

func (m *MSE) Name() string { return "mse" }

func (m *MSE) Description() string {
	return "Mean squared error of the estimate; lower is better"
}

func (m *MSE) Score(reference, estimate []float64) float64 {
	return meanSquaredError(reference, estimate)
}
