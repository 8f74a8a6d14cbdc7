package games

// Two players share a Jeopardy-style board of categories and point values
// Each card, once picked, pulls a multiple-choice question from the Open Trivia Database
// Higher-value cards pull harder questions
// Only the player whose turn it is may pick a card or answer its question
// A correct answer banks the card's points; either way the turn passes

// Display formats:
// Grid of category columns and point-value rows, used cards grayed out
// Modal with the question text and one button per answer option

// Implementation details:
// - Use websockets to push board, score, and turn updates to both players
// - Identify players by cookie on first connection
// - Mark a card used the moment it is picked, before the question arrives,
//   so it can never be opened twice
// - If the question fetch fails, the card stays used and is worth nothing

// How to play
// - Each player joins with a name; the game starts when the second arrives
// - The first joiner takes the first turn
// - Pick a card, answer its question, watch the scores
// - When the board is empty, the higher score wins; equal scores draw
