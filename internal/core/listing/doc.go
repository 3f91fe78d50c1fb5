// Package listing defines the structured listing grammar: the fixed
// enumerated format the answer prompt instructs the model to emit,
// and the parser that recovers a position -> product relation from the
// model's raw output.
//
// Renderer, prompt template and extraction patterns live together
// because they form one contract. The model's output is untrusted
// text: the parser validates it against the grammar and rejects, not
// guesses, on violation. Change the format here or nowhere.
package listing
