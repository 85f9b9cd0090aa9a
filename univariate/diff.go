package univariate

// ForwardDifference estimates derivatives with one-sided forward
// differences. Both orders are one-sided: the first derivative is
// (f(x+eps)-f(x))/eps and the second is the forward difference of the
// first, so the estimates carry the forward bias rather than the smaller
// error of a centered stencil. Callers depending on the numeric values
// get exactly this asymmetric form.
type ForwardDifference struct {
	Eps float64
}

// First returns the forward-difference estimate of df/dx at x.
func (fd ForwardDifference) First(fun Objective, x float64) float64 {
	return (fun.Obj(x+fd.Eps) - fun.Obj(x)) / fd.Eps
}

// Second returns the forward difference of First at x.
func (fd ForwardDifference) Second(fun Objective, x float64) float64 {
	return (fd.First(fun, x+fd.Eps) - fd.First(fun, x)) / fd.Eps
}

// Derivs implements Deriver. The first derivative is reused as the lower
// stencil point of the second, so four objective evaluations are consumed
// per call.
func (fd ForwardDifference) Derivs(fun Objective, x float64) (first, second float64, nFunEvals int) {
	first = fd.First(fun, x)
	second = (fd.First(fun, x+fd.Eps) - first) / fd.Eps
	return first, second, 4
}
