package constants

// ReminderMessages is the pool of motivational bodies attached to routine
// reminder triggers. Content is cosmetic; the scheduler only requires a
// non-empty string.
var ReminderMessages = []string{
	"Time to show up for yourself.",
	"Small steps, every day.",
	"Your routine is waiting for you.",
	"Consistency beats intensity.",
	"Let's keep the streak alive.",
	"A few minutes now, momentum all day.",
	"Future you says thanks.",
	"One checkmark at a time.",
}
