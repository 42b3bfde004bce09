package autodiff

// Standard optimization test surfaces, handy for exercising gradient
// descent end to end.

// Sphere is x^2 + y^2 with its minimum at the origin.
func Sphere(x, y *Variable) *Variable {
	return Add(Square(x), Square(y))
}

// Matyas is 0.26(x^2 + y^2) - 0.48xy.
func Matyas(x, y *Variable) *Variable {
	return Sub(Mul(0.26, Add(Square(x), Square(y))), Mul(0.48, Mul(x, y)))
}

// GoldsteinPrice is the Goldstein-Price function, a sharp two-variable
// benchmark with a global minimum of 3 at (0, -1).
func GoldsteinPrice(x, y *Variable) *Variable {
	a := Mul(
		Add(1.0, Mul(Square(Add(Add(x, y), 1.0)),
			Add(Sub(Add(Sub(19.0, Mul(14.0, x)), Mul(3.0, Square(x))), Sub(Mul(14.0, y), Mul(6.0, Mul(x, y)))), Mul(3.0, Square(y))))),
		Add(30.0, Mul(Square(Sub(Mul(2.0, x), Mul(3.0, y))),
			Add(Sub(Add(Sub(18.0, Mul(32.0, x)), Mul(12.0, Square(x))), Sub(Mul(36.0, Mul(x, y)), Mul(48.0, y))), Mul(27.0, Square(y))))),
	)
	return a
}

// Rosenbrock is 100(y - x^2)^2 + (x - 1)^2, the classic banana valley
// with its minimum at (1, 1).
func Rosenbrock(x, y *Variable) *Variable {
	return Add(Mul(100.0, Square(Sub(y, Square(x)))), Square(Sub(x, 1.0)))
}
