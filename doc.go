// Package calc implements a floating-point calculator for infix and postfix
// (reverse Polish) arithmetic.
//
// Expressions are lists of tokens separated by whitespace. "3 + 4 * 2" is an
// infix expression; "3 4 2 * +" is the same expression in postfix. Tokens are
// classified by their first character, so "3+4" is a single token and is not
// a valid number. The operators are + - * / and ^, where "a ^ b" is
// exponentiation. Parentheses group infix subexpressions.
//
// All operators associate to the left by default, including ^, so
// "2 ^ 3 ^ 2" is "(2 ^ 3) ^ 2". Use RightAssocPow to parse it as
// "2 ^ (3 ^ 2)" instead.
//
// Parse an expression once to evaluate it many times, or use Evaluate to do
// both at once.
//
package calc
