package model

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// expectedLog fills dst with E[log p_i] under Dirichlet(alpha):
// psi(alpha_i) - psi(sum alpha). Using digamma expectations rather
// than raw means keeps the variational bound valid.
func expectedLog(dst, alpha []float64) {
	var total float64
	for _, a := range alpha {
		total += a
	}
	psiTotal := mathext.Digamma(total)
	for i, a := range alpha {
		dst[i] = mathext.Digamma(a) - psiTotal
	}
}

// dirichletMean returns alpha_i / sum(alpha).
func dirichletMean(alpha []float64) []float64 {
	var total float64
	for _, a := range alpha {
		total += a
	}
	mean := make([]float64, len(alpha))
	for i, a := range alpha {
		mean[i] = a / total
	}
	return mean
}

// dirichletKL computes KL(Dirichlet(alpha) || Dirichlet(prior)).
func dirichletKL(alpha, prior []float64) float64 {
	var sumA, sumP float64
	for _, a := range alpha {
		sumA += a
	}
	for _, p := range prior {
		sumP += p
	}

	lgA, _ := math.Lgamma(sumA)
	lgP, _ := math.Lgamma(sumP)
	kl := lgA - lgP
	psiTotal := mathext.Digamma(sumA)
	for i, a := range alpha {
		la, _ := math.Lgamma(a)
		lp, _ := math.Lgamma(prior[i])
		kl += lp - la + (a-prior[i])*(mathext.Digamma(a)-psiTotal)
	}
	return kl
}

// dirichletKLUniform is dirichletKL against a symmetric prior with
// concentration priorVal, without materializing the prior vector.
func dirichletKLUniform(alpha []float64, priorVal float64) float64 {
	var sumA float64
	for _, a := range alpha {
		sumA += a
	}

	lgA, _ := math.Lgamma(sumA)
	lgP, _ := math.Lgamma(priorVal * float64(len(alpha)))
	lgPrior, _ := math.Lgamma(priorVal)
	kl := lgA - lgP
	psiTotal := mathext.Digamma(sumA)
	for _, a := range alpha {
		la, _ := math.Lgamma(a)
		kl += lgPrior - la + (a-priorVal)*(mathext.Digamma(a)-psiTotal)
	}
	return kl
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
