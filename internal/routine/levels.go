package routine

// Level - один шаг сценария дня.
type Level struct {
	Prompt   string
	Accepted string
	Success  string
	Fail     string
}

// Levels - фиксированный сценарий Daily Routine Adventure, с утра до ночи.
var Levels = []Level{
	{Prompt: "Say 'wake up' or 'sleep more'", Accepted: "wake up", Success: "Good morning! You woke up on time.", Fail: "You can't sleep more. Let's wake up now."},
	{Prompt: "Say 'brush' or 'play'", Accepted: "brush", Success: "Nice! Brushing keeps teeth healthy.", Fail: "No play now. First, let's brush."},
	{Prompt: "Say 'bath' or 'mobile'", Accepted: "bath", Success: "Refreshing! Bath time it is.", Fail: "No mobile now. Take a bath."},
	{Prompt: "Say 'uniform' or 'pajamas'", Accepted: "uniform", Success: "Perfect! Let's wear the uniform.", Fail: "No pajamas now. Wear uniform."},
	{Prompt: "Say 'breakfast' or 'chips'", Accepted: "breakfast", Success: "Healthy breakfast! Well done.", Fail: "Not chips now. Have breakfast."},
	{Prompt: "Say 'school bag' or 'video game'", Accepted: "school bag", Success: "Great! Packing the school bag.", Fail: "No video games now. Pick school bag."},
	{Prompt: "Say 'bus stop' or 'TV'", Accepted: "bus stop", Success: "Smart! Heading to bus stop.", Fail: "No TV now. Go to bus stop."},
	{Prompt: "Say 'greet teacher' or 'run'", Accepted: "greet teacher", Success: "Nice manners! Greeted the teacher.", Fail: "No running. Greet your teacher."},
	{Prompt: "Say 'attend class' or 'sleep'", Accepted: "attend class", Success: "Focused! Attending class now.", Fail: "No sleeping. Attend your class."},
	{Prompt: "Say 'lunch' or 'candy'", Accepted: "lunch", Success: "Healthy lunch time!", Fail: "No candy now. Have lunch."},
	{Prompt: "Say 'playground' or 'canteen'", Accepted: "playground", Success: "Great! Recess fun in playground.", Fail: "No canteen today. Let's play."},
	{Prompt: "Say 'say bye' or 'throw bag'", Accepted: "say bye", Success: "Polite! You said bye to friends.", Fail: "Don't throw bag! Say bye nicely."},
	{Prompt: "Say 'homework' or 'cartoon'", Accepted: "homework", Success: "Responsible! Starting homework.", Fail: "No cartoon now. Do homework."},
	{Prompt: "Say 'dinner' or 'ice cream'", Accepted: "dinner", Success: "Yum! Time for dinner.", Fail: "No ice cream now. Have dinner."},
	{Prompt: "Say 'sleep' or 'mobile'", Accepted: "sleep", Success: "Good night! Sweet dreams.", Fail: "No mobile now. Time to sleep."},
}
