/*
Package app contains the ABCI application plumbing of the chain.

StoreApp keeps the committed state together with the check and deliver
cache wraps, answers queries and loads the genesis. BaseApp embeds it and
routes CheckTx and DeliverTx through a decorator chain that ends in a Router:

	handler := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(router)
*/
package app
